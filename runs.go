package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Nydauron/champstandings/config"
	"github.com/Nydauron/champstandings/store"
	"github.com/Nydauron/champstandings/writers"
	"github.com/urfave/cli/v2"
)

func openStore(cCtx *cli.Context) (*config.Config, *store.Store, error) {
	cfg, err := config.Load(cCtx.String(configFlag))
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), exitConfig)
	}
	st, err := store.Open(cCtx.Context, store.Driver(cfg.Store.Driver), cfg.Store.DSN)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), exitInput)
	}
	return cfg, st, nil
}

func runsAction(cCtx *cli.Context) error {
	_, st, err := openStore(cCtx)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cCtx.Context, cCtx.Int(limitFlag))
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}

	tw := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTITLE\tDROP\tSERIES\tCREATED\t")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t\n", r.ID, r.Title, r.DropWeeks, r.Series, r.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// runsShowAction re-renders an archived report.
func runsShowAction(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return cli.Exit("usage: runs show RUN", exitInput)
	}
	cfg, st, err := openStore(cCtx)
	if err != nil {
		return err
	}
	defer st.Close()

	format := cfg.OutputFormat
	if cCtx.IsSet(outputFormatFlag) {
		format = cCtx.String(outputFormatFlag)
	}
	outputFormat, err := writers.ParseFormat(format)
	if err != nil {
		return cli.Exit(err.Error(), exitConfig)
	}

	rep, err := st.LoadReport(cCtx.Context, cCtx.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}

	var out io.WriteCloser = nopWriteCloser{cCtx.App.Writer}
	if loc := cCtx.String(outputFlag); loc != "" {
		out = writers.Output(loc)
	}
	if err := writers.Encode(out, outputFormat, rep); err != nil {
		out.Close()
		return cli.Exit(err.Error(), exitOutput)
	}
	if err := out.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("closing output failed: %v", err), exitOutput)
	}
	return nil
}

// runsHistoryAction prints one driver's week-by-week standing from an
// archived run.
func runsHistoryAction(cCtx *cli.Context) error {
	if cCtx.NArg() != 3 {
		return cli.Exit("usage: runs history RUN SERIES DRIVER", exitInput)
	}
	id, series, driver := cCtx.Args().Get(0), cCtx.Args().Get(1), cCtx.Args().Get(2)

	_, st, err := openStore(cCtx)
	if err != nil {
		return err
	}
	defer st.Close()

	history, err := st.DriverHistory(cCtx.Context, id, series, driver)
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}
	if len(history) == 0 {
		return cli.Exit(fmt.Sprintf("run %s has no standings for %q in series %q", id, driver, series), exitData)
	}

	tw := tabwriter.NewWriter(cCtx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tPOS\tPOINTS\tGAP\tCHANGE\t")
	for i, h := range history {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%+d\t\n", i+1, h.Position, h.Points, h.Gap, h.Change)
	}
	return tw.Flush()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
