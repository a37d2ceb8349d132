package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRenderer injects a contract renderer.
func WithRenderer(r *contract.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = r
	}
}

// WithWriter configures where Generate persists contracts when a request asks
// for it.
func WithWriter(w output.Writer) Option {
	return func(o *Orchestrator) {
		o.writer = w
	}
}

// WithDefaults sets the base parameters that blank or missing values fall
// back to.
func WithDefaults(p params.GenerationParameters) Option {
	return func(o *Orchestrator) {
		o.defaults = p
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator resolves parameters, renders the contract and optionally
// writes it. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	renderer      *contract.Renderer
	writer        output.Writer
	defaults      params.GenerationParameters
	logger        logrus.FieldLogger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaults: params.Defaults(),
		writer:   output.Writer{Dir: "."},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.renderer == nil {
		o.renderer, o.initialiseErr = contract.New()
	}
	if o.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		o.logger = logger
	}
	return o
}

// Request describes a single generation.
type Request struct {
	// Params are used as-is when set, bypassing value parsing and
	// validation.
	Params *params.GenerationParameters

	// Values are textual inputs keyed by field name. Blank or missing entries
	// keep the configured defaults.
	Values map[string]string

	// Write persists the contract through the configured writer.
	Write bool

	// Overwrite replaces an existing file when Write is set.
	Overwrite bool
}

// Result is the outcome of Generate.
type Result struct {
	Params   params.GenerationParameters
	Contract contract.RenderedContract
	FileName string
	Path     string
}

// Generate runs the pipeline. Validation failures are returned as
// params.FieldErrors.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	p, err := o.resolve(req)
	if err != nil {
		return Result{}, err
	}

	rendered, err := o.renderer.Render(p)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render contract: %w", err)
	}

	writer := o.writer
	result := Result{
		Params:   p,
		Contract: rendered,
		FileName: output.FileName(p, writer.Extension),
	}
	if !req.Write {
		return result, nil
	}

	writer.Overwrite = writer.Overwrite || req.Overwrite
	path, err := writer.Write(p, rendered.String())
	if err != nil {
		return result, fmt.Errorf("orchestrator: %w", err)
	}
	result.Path = path

	o.logger.WithFields(logrus.Fields{
		"contract": p.ContractName(),
		"path":     path,
		"format":   p.AccountFormat.String(),
	}).Debug("contract written")
	return result, nil
}

func (o *Orchestrator) resolve(req Request) (params.GenerationParameters, error) {
	if req.Params != nil {
		return *req.Params, nil
	}
	return params.FromValues(req.Values, o.defaults)
}
