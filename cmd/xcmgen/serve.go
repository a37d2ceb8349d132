package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xcmgen/pkg/webform"
)

type serveOptions struct {
	addr  string
	grace time.Duration
}

func (a *app) serveCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&opts.grace, "grace", 0, "shutdown grace period (default from config)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, opts *serveOptions) error {
	addr := opts.addr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	grace := opts.grace
	if grace <= 0 {
		grace = a.cfg.Server.Grace
	}

	renderer, err := a.contractRenderer()
	if err != nil {
		return err
	}
	pages, err := webform.NewRenderer(
		webform.WithTemplatesDir(a.cfg.Templates.WebDir),
		webform.WithTitle(a.cfg.Server.Title),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, err := webform.New(ctx,
		webform.WithDefaults(a.cfg.Defaults),
		webform.WithContractRenderer(renderer),
		webform.WithPageRenderer(pages),
		webform.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	return webform.Serve(ctx, addr, handler, grace, a.logger)
}
