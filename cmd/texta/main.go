package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"harshagw/textanalysis/internal/library"
)

const defaultLibraryDir = ".texta"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "texta",
		Usage: "Text analysis of string variables: spelling, frequencies, sentiment, search and stems",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TEXTA_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "library",
				Usage:   "Directory of installed lexicons",
				Value:   defaultLibraryDir,
				EnvVars: []string{"TEXTA_LIBRARY"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			runCommand(),
			lexiconCommand(),
			{
				Name:   "repl",
				Usage:  "Interactive shell over a dataset",
				Action: replCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "CSV dataset to load",
						Required: true,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func openLibrary(c *cli.Context) (*library.Library, error) {
	lib, err := library.Open(library.DefaultConfig(c.String("library")))
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon library: %w", err)
	}
	return lib, nil
}
