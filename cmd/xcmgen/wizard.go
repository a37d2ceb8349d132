package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xcmgen/pkg/wizard"
)

type wizardOptions struct {
	out   string
	force bool
}

func addWizardFlags(cmd *cobra.Command, opts *wizardOptions) {
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "directory for the generated contract (default from config)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing contract without asking")
}

func (a *app) wizardCommand() *cobra.Command {
	opts := &wizardOptions{}
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Collect parameters interactively and write the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWizard(cmd, opts)
		},
	}
	addWizardFlags(cmd, opts)
	return cmd
}

func (a *app) runWizard(cmd *cobra.Command, opts *wizardOptions) error {
	renderer, err := a.contractRenderer()
	if err != nil {
		return err
	}
	palette := a.palette()

	session, err := wizard.New(
		wizard.WithPromptDriver(a.promptDriver()),
		wizard.WithDefaults(a.cfg.Defaults),
		wizard.WithRenderer(renderer),
		wizard.WithOutput(a.writer(opts.out, opts.force)),
		wizard.WithPalette(palette),
		wizard.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	_, err = session.Run(cmd.Context())
	switch {
	case errors.Is(err, wizard.ErrAborted):
		fmt.Fprintln(a.out, palette.Warn("Aborted."))
		return nil
	case errors.Is(err, wizard.ErrOverwriteDeclined):
		return nil
	}
	return err
}
