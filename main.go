package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	inputFlag        = "input"
	outputFlag       = "output"
	formatFlag       = "format"
	csvFlag          = "csv"
	outputFormatFlag = "output-format"
	configFlag       = "config"
	dropWeeksFlag    = "drop-weeks"
	titleFlag        = "title"
	interactiveFlag  = "interactive"
	archiveFlag      = "archive"
	verboseFlag      = "verbose"
	addrFlag         = "addr"
	watchFlag        = "watch"
	limitFlag        = "limit"
)

// Exit codes by failure class.
const (
	exitInput  = 2
	exitOutput = 3
	exitData   = 4
	exitConfig = 5
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func inputFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     inputFlag,
			Aliases:  []string{"i"},
			Usage:    "URL or path of a CSV, HTML or YAML results table. Repeat for more series.",
			Required: required,
		},
		&cli.StringFlag{
			Name:  formatFlag,
			Usage: "Input format (csv, html, yaml). Detected from the file extension when unset.",
		},
		&cli.BoolFlag{
			Name:  csvFlag,
			Usage: "Inputs are CSV files, same as --format csv",
		},
	}
}

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
			EnvVars: []string{"CHAMPSTANDINGS_CONFIG"},
		},
		&cli.IntFlag{
			Name:  dropWeeksFlag,
			Usage: "Worst-scoring weeks excluded from each total (overrides the config file)",
		},
		&cli.StringFlag{
			Name:  titleFlag,
			Usage: "Season title (overrides the config file)",
		},
		&cli.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "Log debug messages",
		},
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newApp() *cli.App {
	// The root command's flags are checked in generateAction so that
	// subcommands do not inherit them as required.
	flags := append(inputFlags(false), settingsFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    outputFlag,
			Aliases: []string{"o"},
			Usage:   "The location to write the standings. Can be a file path or \"-\" (for stdout).",
		},
		&cli.StringFlag{
			Name:    outputFormatFlag,
			Aliases: []string{"f"},
			Usage:   "Output format: yaml, json or text (overrides the config file)",
		},
		&cli.BoolFlag{
			Name:  interactiveFlag,
			Usage: "Prompt for the season title and drop weeks",
		},
		&cli.BoolFlag{
			Name:  archiveFlag,
			Usage: "Archive the report into the configured store",
		},
	)

	serveFlags := append(inputFlags(true), settingsFlags()...)
	serveFlags = append(serveFlags,
		&cli.StringFlag{
			Name:  addrFlag,
			Usage: "Listen address (overrides the config file)",
		},
		&cli.BoolFlag{
			Name:  watchFlag,
			Usage: "Recompute the standings when an input or the config file changes",
		},
	)

	return &cli.App{
		Name:    "champstandings",
		Usage:   "A tool to turn weekly race finishes into championship standings",
		Version: semanticVersion,
		Flags:   flags,
		Action:  generateAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the standings as JSON over HTTP",
				Flags:  serveFlags,
				Action: serveAction,
			},
			{
				Name:  "runs",
				Usage: "List, show and inspect archived reports",
				Flags: []cli.Flag{
					settingsFlags()[0],
					&cli.IntFlag{
						Name:  limitFlag,
						Usage: "Number of runs to list (0 for all)",
						Value: 20,
					},
				},
				Action: runsAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Print an archived report",
						ArgsUsage: "RUN",
						Flags: []cli.Flag{
							settingsFlags()[0],
							&cli.StringFlag{
								Name:    outputFlag,
								Aliases: []string{"o"},
								Usage:   "Write to this path instead of stdout",
							},
							&cli.StringFlag{
								Name:    outputFormatFlag,
								Aliases: []string{"f"},
								Usage:   "Output format: yaml, json or text (overrides the config file)",
							},
						},
						Action: runsShowAction,
					},
					{
						Name:      "history",
						Usage:     "Print a driver's standing after every week of an archived run",
						ArgsUsage: "RUN SERIES DRIVER",
						Flags:     []cli.Flag{settingsFlags()[0]},
						Action:    runsHistoryAction,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("champstandings failed", "err", err)
		os.Exit(1)
	}
}
