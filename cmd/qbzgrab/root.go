package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/config"
	"github.com/calvez/qbzgrab/internal/constants"
	"github.com/calvez/qbzgrab/internal/downloader"
	"github.com/calvez/qbzgrab/internal/ledger"
	"github.com/calvez/qbzgrab/internal/logger"
	"github.com/calvez/qbzgrab/internal/transfer"
)

// appContext wires the shared dependencies once per invocation. Commands
// call setup lazily so flag-only invocations (help, completion) never
// touch the config or the database.
type appContext struct {
	configFlag    string
	directoryFlag string
	qualityFlag   int

	cfg  *config.Config
	log  *logger.Logger
	led  *ledger.DB
	orch *downloader.Orchestrator
}

func (a *appContext) setup() error {
	cfg, err := config.Load(a.configFlag)
	if err != nil {
		return err
	}
	if a.directoryFlag != "" {
		cfg.Directory = a.directoryFlag
	}
	if a.qualityFlag != 0 {
		cfg.Quality = a.qualityFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	tr := transfer.NewClient(&http.Client{Timeout: constants.DefaultHTTPTimeout}, constants.DefaultRequestInterval)
	cat := catalog.NewHTTPClient(cfg.CatalogURL)

	if !cfg.NoDB {
		led, err := ledger.Open(cfg.DBPath, a.log)
		if err != nil {
			return fmt.Errorf("failed to open download ledger: %w", err)
		}
		a.led = led
	}

	a.orch = downloader.New(cat, tr, a.led, cfg, a.log)
	return nil
}

func (a *appContext) close() {
	if a.led != nil {
		a.led.Close()
	}
}

func newRootCommand() *cobra.Command {
	ctx := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "qbzgrab",
		Short:         "Music release downloader",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&ctx.directoryFlag, "directory", "d", "", "Download directory override")
	rootCmd.PersistentFlags().IntVarP(&ctx.qualityFlag, "quality", "q", 0, "Quality tier override (5, 6, 7 or 27)")

	rootCmd.AddCommand(newAlbumCommand(ctx))
	rootCmd.AddCommand(newTrackCommand(ctx))
	rootCmd.AddCommand(newM3UCommand(ctx))

	return rootCmd
}
