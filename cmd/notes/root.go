package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"geonotes/config"
	"geonotes/internal/bootstrap"
	"geonotes/internal/note"
	"geonotes/internal/note/usecase"
	"geonotes/internal/notify"
	"geonotes/pkg/log"
)

// app is the wiring one command invocation runs against.
type app struct {
	cfg     *config.Config
	l       log.Logger
	agg     note.Aggregator
	uc      note.UseCase
	release func()
}

// opener builds the app. Tests swap it for one backed by a seeded store.
type opener func(ctx context.Context, verbose bool, out io.Writer) (*app, error)

func openApp(ctx context.Context, verbose bool, out io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	l := log.NewNop()
	if verbose {
		l = log.Init(log.ZapConfig{
			Level:        "debug",
			Mode:         cfg.Logger.Mode,
			Encoding:     cfg.Logger.Encoding,
			ColorEnabled: cfg.Logger.ColorEnabled,
		})
	}

	gw, release, err := bootstrap.Gateway(ctx, cfg, l, nil)
	if err != nil {
		return nil, err
	}

	agg := usecase.NewAggregator(l, gw, usecase.PageSizer{
		RowHeight: cfg.Pagination.RowHeight,
		Max:       cfg.Pagination.MaxPageSize,
	}, cfg.Pagination.DefaultViewportHeight, nil)

	notifier := notify.Multi(notify.NewWriter(out), bootstrap.Notifier(ctx, cfg, l, nil, nil))

	return &app{
		cfg:     cfg,
		l:       l,
		agg:     agg,
		uc:      usecase.New(l, gw, agg, notifier, nil),
		release: release,
	}, nil
}

func newRootCmd(open opener) *cobra.Command {
	var (
		verbose bool
		a       *app
	)

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Browse and edit geotagged photo notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = open(cmd.Context(), verbose, cmd.OutOrStdout())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil && a.release != nil {
				a.release()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	get := func() *app { return a }
	root.AddCommand(
		newListCmd(get),
		newShowCmd(get),
		newAddCmd(get),
		newEditCmd(get),
		newRmCmd(get),
	)
	return root
}
