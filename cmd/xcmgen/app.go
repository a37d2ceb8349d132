package main

import (
	"fmt"
	"io"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-xcmgen/internal/config"
	"github.com/goliatone/go-xcmgen/internal/logging"
	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/style"
	"github.com/goliatone/go-xcmgen/pkg/wizard"
)

// app holds the streams, persistent flags and the state resolved from them
// before any command runs.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg    config.Config
	logger *logrus.Logger

	// clock and driver are replaced in tests.
	clock  func() time.Time
	driver wizard.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func (a *app) command() *cobra.Command {
	wizardOpts := &wizardOptions{}
	root := &cobra.Command{
		Use:   "xcmgen",
		Short: "Generate Solidity XCM bridge contracts",
		Long: `xcmgen renders a Solidity contract that bridges native and ERC-20 assets
from an EVM parachain to another parachain through the XCM precompile.

Run without a subcommand to start the interactive wizard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWizard(cmd, wizardOpts)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (default $"+config.EnvPath+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	addWizardFlags(root, wizardOpts)

	root.AddCommand(
		a.wizardCommand(),
		a.renderCommand(),
		a.serveCommand(),
		a.schemaCommand(),
	)
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ResolvePath(a.configPath))
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	format := cfg.Log.Format
	if a.logFormat != "" {
		format = a.logFormat
	}
	logger, err := logging.New(
		logging.WithLevel(level),
		logging.WithFormat(format),
		logging.WithWriter(a.errOut),
		logging.WithColor(!a.colorDisabled() && style.IsTerminal(a.errOut)),
	)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) colorDisabled() bool {
	return a.noColor || a.cfg.UI.NoColor
}

func (a *app) palette() style.Palette {
	return style.ForWriter(a.out, a.colorDisabled())
}

func (a *app) contractRenderer() (*contract.Renderer, error) {
	opts := []contract.Option{contract.WithClock(a.clock)}
	if dir := a.cfg.Templates.ContractDir; dir != "" {
		opts = append(opts, contract.WithTemplateDir(dir))
	}
	r, err := contract.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("contract renderer: %w", err)
	}
	return r, nil
}

func (a *app) writer(dir string, force bool) output.Writer {
	if dir == "" {
		dir = a.cfg.Output.Dir
	}
	return output.Writer{
		Dir:       dir,
		Extension: a.cfg.Output.Extension,
		Overwrite: force || a.cfg.Output.Overwrite,
	}
}

func (a *app) promptDriver() wizard.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	in, _ := a.in.(terminal.FileReader)
	out, _ := a.out.(terminal.FileWriter)
	return wizard.NewSurveyDriver(in, out, a.errOut)
}
