package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xcmgen/pkg/orchestrator"
	"github.com/goliatone/go-xcmgen/pkg/params"
)

// renderFlagFields maps render flags to parameter fields.
var renderFlagFields = []struct {
	flag  string
	field string
}{
	{"project-name", params.FieldProjectName},
	{"author", params.FieldAuthorName},
	{"parachain-id", params.FieldTargetParachainID},
	{"account-format", params.FieldAccountFormat},
	{"precompile", params.FieldPrecompileAddress},
	{"pallet-index", params.FieldPalletIndex},
	{"default-weight", params.FieldDefaultWeight},
}

type renderOptions struct {
	out    string
	stdout bool
	force  bool

	projectName   string
	author        string
	parachainID   uint32
	accountFormat string
	precompile    string
	palletIndex   uint8
	defaultWeight uint64
}

func (a *app) renderCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a contract from flags and config without prompting",
		Example: `  xcmgen render --project-name "My Bridge" --parachain-id 2030 --stdout
  xcmgen render --account-format substrate --out build/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd, opts)
		},
	}

	defaults := params.Defaults()
	flags := cmd.Flags()
	flags.StringVar(&opts.projectName, "project-name", defaults.ProjectName, "project name; spaces are removed and Bridge appended")
	flags.StringVar(&opts.author, "author", defaults.AuthorName, "author written into the doc block")
	flags.Uint32Var(&opts.parachainID, "parachain-id", defaults.TargetParachainID, "destination parachain id")
	flags.StringVar(&opts.accountFormat, "account-format", defaults.AccountFormat.String(), "beneficiary encoding: ethereum or substrate")
	flags.StringVar(&opts.precompile, "precompile", defaults.PrecompileAddress, "XCM precompile address")
	flags.Uint8Var(&opts.palletIndex, "pallet-index", defaults.PalletIndex, "assets pallet index")
	flags.Uint64Var(&opts.defaultWeight, "default-weight", defaults.DefaultWeight, "weight limit bought on the destination")
	flags.StringVarP(&opts.out, "out", "o", "", "directory for the generated contract (default from config)")
	flags.BoolVar(&opts.stdout, "stdout", false, "print the contract instead of writing a file")
	flags.BoolVar(&opts.force, "force", false, "overwrite an existing contract")
	cmd.MarkFlagsMutuallyExclusive("stdout", "out")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, opts *renderOptions) error {
	renderer, err := a.contractRenderer()
	if err != nil {
		return err
	}

	// Only explicitly set flags override the configured defaults.
	values := make(map[string]string, len(renderFlagFields))
	for _, mapping := range renderFlagFields {
		if f := cmd.Flags().Lookup(mapping.flag); f != nil && f.Changed {
			values[mapping.field] = f.Value.String()
		}
	}

	gen := orchestrator.New(
		orchestrator.WithRenderer(renderer),
		orchestrator.WithDefaults(a.cfg.Defaults),
		orchestrator.WithWriter(a.writer(opts.out, opts.force)),
		orchestrator.WithLogger(a.logger),
	)
	result, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Values: values,
		Write:  !opts.stdout,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if opts.stdout {
		_, err := fmt.Fprint(a.out, result.Contract.String())
		return err
	}
	fmt.Fprintln(a.out, a.palette().Success("Smart contract generated: "+result.Path))
	return nil
}
