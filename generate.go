package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nydauron/champstandings/config"
	"github.com/Nydauron/champstandings/parsers"
	"github.com/Nydauron/champstandings/prompts"
	"github.com/Nydauron/champstandings/report"
	"github.com/Nydauron/champstandings/standings"
	"github.com/Nydauron/champstandings/store"
	"github.com/Nydauron/champstandings/writers"
	"github.com/urfave/cli/v2"
)

// loadSettings reads the config file and applies command line overrides.
func loadSettings(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cCtx.String(configFlag))
	if err != nil {
		return nil, cli.Exit(err.Error(), exitConfig)
	}
	if cCtx.IsSet(dropWeeksFlag) {
		cfg.DropWeeks = cCtx.Int(dropWeeksFlag)
	}
	if cCtx.IsSet(titleFlag) {
		cfg.Title = cCtx.String(titleFlag)
	}
	if cCtx.IsSet(outputFormatFlag) {
		cfg.OutputFormat = cCtx.String(outputFormatFlag)
	}
	if cCtx.IsSet(addrFlag) {
		cfg.Server.Addr = cCtx.String(addrFlag)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(fmt.Sprintf("config: %v", err), exitConfig)
	}
	return cfg, nil
}

func inputFormat(cCtx *cli.Context) (parsers.Format, error) {
	if cCtx.Bool(csvFlag) {
		return parsers.FormatCSV, nil
	}
	if !cCtx.IsSet(formatFlag) {
		return "", nil
	}
	f, err := parsers.ParseFormat(cCtx.String(formatFlag))
	if err != nil {
		return "", cli.Exit(err.Error(), exitInput)
	}
	return f, nil
}

// loadTables reads every input location. An empty format is detected per
// location.
func loadTables(ctx context.Context, inputs []string, format parsers.Format, logger *slog.Logger) ([]parsers.Table, error) {
	var tables []parsers.Table
	for _, location := range inputs {
		parsed, err := parsers.Load(ctx, location, format)
		if errors.Is(err, parsers.ErrUnreadable) {
			return nil, cli.Exit(err.Error(), exitInput)
		}
		if err != nil {
			return nil, cli.Exit(err.Error(), exitData)
		}
		logger.Debug("input read", "location", location, "series", len(parsed))
		tables = append(tables, parsed...)
	}
	return tables, nil
}

// buildReport reads the inputs and ranks every series.
func buildReport(ctx context.Context, inputs []string, format parsers.Format, cfg *config.Config, logger *slog.Logger) (*report.Report, error) {
	tables, err := loadTables(ctx, inputs, format, logger)
	if err != nil {
		return nil, err
	}
	rep, err := report.Generate(cfg.Title, tables, cfg.Scoring(), logger)
	if errors.Is(err, standings.ErrInvalidConfiguration) {
		return nil, cli.Exit(err.Error(), exitConfig)
	}
	if err != nil {
		return nil, cli.Exit(err.Error(), exitData)
	}
	return &rep, nil
}

func archive(ctx context.Context, cfg *config.Config, rep *report.Report, logger *slog.Logger) error {
	st, err := store.Open(ctx, store.Driver(cfg.Store.Driver), cfg.Store.DSN)
	if err != nil {
		return cli.Exit(err.Error(), exitOutput)
	}
	defer st.Close()

	id, err := st.SaveReport(ctx, rep)
	if err != nil {
		return cli.Exit(err.Error(), exitOutput)
	}
	logger.Info("report archived", "run", id, "driver", cfg.Store.Driver)
	return nil
}

func generateAction(cCtx *cli.Context) error {
	logger := newLogger(cCtx.Bool(verboseFlag))
	slog.SetDefault(logger)

	if len(cCtx.StringSlice(inputFlag)) == 0 {
		return cli.Exit("Required flag \"input\" not set", exitInput)
	}
	if cCtx.String(outputFlag) == "" {
		return cli.Exit("Required flag \"output\" not set", exitOutput)
	}

	cfg, err := loadSettings(cCtx)
	if err != nil {
		return err
	}
	format, err := inputFormat(cCtx)
	if err != nil {
		return err
	}
	outputFormat, err := writers.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return cli.Exit(err.Error(), exitConfig)
	}

	doArchive := cCtx.Bool(archiveFlag)
	if cCtx.Bool(interactiveFlag) {
		p := prompts.Stdio()
		if cfg.Title == "" {
			cfg.Title = p.SeasonTitlePrompt()
		}
		if !cCtx.IsSet(dropWeeksFlag) {
			cfg.DropWeeks = p.DropWeeksPrompt(cfg.DropWeeks)
		}
		if !doArchive {
			doArchive = p.ConfirmPrompt("Archive this report?")
		}
	}

	rep, err := buildReport(cCtx.Context, cCtx.StringSlice(inputFlag), format, cfg, logger)
	if err != nil {
		return err
	}

	out := writers.Output(cCtx.String(outputFlag))
	if err := writers.Encode(out, outputFormat, rep); err != nil {
		out.Close()
		return cli.Exit(err.Error(), exitOutput)
	}
	if err := out.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("closing output failed: %v", err), exitOutput)
	}

	if doArchive {
		return archive(cCtx.Context, cfg, rep, logger)
	}
	return nil
}
