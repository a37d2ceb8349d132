// Package wizard runs the interactive line-based session that collects the
// generation parameters, renders the contract and writes it to disk.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/schema"
	"github.com/goliatone/go-xcmgen/pkg/style"
)

// Title is printed in the session banner.
const Title = "POLKADOT XCM WIZARD"

// Result describes a completed session.
type Result struct {
	Params   params.GenerationParameters
	Contract contract.RenderedContract
	Path     string
}

// Session drives one interactive generation.
type Session struct {
	driver   PromptDriver
	form     *model.FormModel
	defaults params.GenerationParameters
	renderer *contract.Renderer
	writer   output.Writer
	palette  style.Palette
	logger   logrus.FieldLogger
}

// New builds a session with the survey driver, embedded schema, default
// parameters and a plain palette unless overridden.
func New(options ...Option) (*Session, error) {
	s := &Session{
		defaults: params.Defaults(),
		writer:   output.Writer{Dir: "."},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.driver == nil {
		s.driver = NewSurveyDriver(nil, nil, nil)
	}
	if s.renderer == nil {
		renderer, err := contract.New()
		if err != nil {
			return nil, fmt.Errorf("wizard: %w", err)
		}
		s.renderer = renderer
	}
	if s.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		s.logger = logger
	}
	return s, nil
}

// Run prompts for every field, renders the contract, writes it and prints a
// summary with follow-up guidance.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("wizard: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	form, err := s.formModel(ctx)
	if err != nil {
		return Result{}, err
	}

	s.banner(ctx)

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		value, err := s.promptField(ctx, field)
		if err != nil {
			return Result{}, err
		}
		values[field.Name] = value
	}

	p, err := s.resolve(ctx, form, values)
	if err != nil {
		return Result{}, err
	}

	rendered, err := s.renderer.Render(p)
	if err != nil {
		return Result{}, fmt.Errorf("wizard: %w", err)
	}

	path, err := s.write(ctx, p, rendered)
	if err != nil {
		return Result{Params: p, Contract: rendered}, err
	}
	s.logger.WithFields(logrus.Fields{
		"contract": p.ContractName(),
		"path":     path,
		"format":   p.AccountFormat.String(),
	}).Debug("contract written")

	s.summary(ctx, p, path)
	return Result{Params: p, Contract: rendered, Path: path}, nil
}

func (s *Session) formModel(ctx context.Context) (model.FormModel, error) {
	if s.form != nil {
		return *s.form, nil
	}
	form, err := schema.Load(ctx, schema.WithDefaults(s.defaults))
	if err != nil {
		return model.FormModel{}, fmt.Errorf("wizard: %w", err)
	}
	return form, nil
}

// resolve converts the answers into parameters, re-prompting any field the
// cross-field validation rejects until everything validates.
func (s *Session) resolve(ctx context.Context, form model.FormModel, values map[string]string) (params.GenerationParameters, error) {
	for {
		p, err := params.FromValues(values, s.defaults)
		if err == nil {
			return p, nil
		}
		var fieldErrs params.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return params.GenerationParameters{}, fmt.Errorf("wizard: %w", err)
		}
		for _, field := range form.Fields {
			msg, ok := fieldErrs[field.Name]
			if !ok {
				continue
			}
			s.info(ctx, s.palette.Error(fmt.Sprintf("Invalid %s: %s", displayLabel(field), msg)))
			value, err := s.promptField(ctx, field)
			if err != nil {
				return params.GenerationParameters{}, err
			}
			values[field.Name] = value
		}
	}
}

func (s *Session) promptField(ctx context.Context, field model.Field) (string, error) {
	switch {
	case len(field.Options) > 0:
		return s.promptEnum(ctx, field)
	case field.Type == model.FieldTypeInteger:
		return s.promptInteger(ctx, field)
	default:
		return s.promptString(ctx, field)
	}
}

func (s *Session) promptString(ctx context.Context, field model.Field) (string, error) {
	label := displayLabel(field)
	rules := collectValidationRules(field)
	defaultVal := field.DefaultString()

	for {
		response, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: defaultVal,
			Help:    helpText(field),
		})
		if err != nil {
			return "", err
		}
		response = strings.TrimSpace(response)
		if response == "" {
			response = defaultVal
		}
		if response == "" && !rules.required {
			return "", nil
		}

		if err := rules.validateString(response); err != nil {
			s.info(ctx, s.palette.Error(fmt.Sprintf("Invalid %s: %v", label, err)))
			continue
		}
		return response, nil
	}
}

func (s *Session) promptInteger(ctx context.Context, field model.Field) (string, error) {
	label := displayLabel(field)
	rules := collectValidationRules(field)
	defaultVal := field.DefaultString()

	for {
		input, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: defaultVal,
			Help:    helpText(field),
		})
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if defaultVal == "" {
				s.info(ctx, s.palette.Error(fmt.Sprintf("Invalid %s: required", label)))
				continue
			}
			input = defaultVal
		}

		n, err := rules.parseInteger(input)
		if err != nil {
			s.info(ctx, s.palette.Error(fmt.Sprintf("Invalid %s: %v", label, err)))
			continue
		}
		return fmt.Sprint(n), nil
	}
}

func (s *Session) promptEnum(ctx context.Context, field model.Field) (string, error) {
	label := displayLabel(field)
	options := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, opt.Label)
	}
	defaultIdx := field.OptionIndex(field.DefaultString())

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         helpText(field),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			s.info(ctx, s.palette.Error(fmt.Sprintf("Invalid %s selection", label)))
			continue
		}
		return field.Options[idx].Value, nil
	}
}

func (s *Session) write(ctx context.Context, p params.GenerationParameters, rendered contract.RenderedContract) (string, error) {
	path, err := s.writer.Write(p, rendered.String())
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, output.ErrExists) {
		return "", fmt.Errorf("wizard: %w", err)
	}

	overwrite, cerr := s.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s already exists. Overwrite?", path),
		Default: false,
	})
	if cerr != nil {
		return "", cerr
	}
	if !overwrite {
		s.info(ctx, s.palette.Warn("Keeping existing "+path))
		return "", ErrOverwriteDeclined
	}

	forced := s.writer
	forced.Overwrite = true
	path, err = forced.Write(p, rendered.String())
	if err != nil {
		return "", fmt.Errorf("wizard: %w", err)
	}
	return path, nil
}

func (s *Session) banner(ctx context.Context) {
	s.info(ctx, s.palette.Rule(42))
	s.info(ctx, s.palette.Header("   "+Title))
	s.info(ctx, s.palette.Rule(42))
	s.info(ctx, s.palette.Info("Press Enter to accept the value in brackets."))
}

func (s *Session) summary(ctx context.Context, p params.GenerationParameters, path string) {
	s.info(ctx, "")
	s.info(ctx, s.palette.Success("Smart contract generated: "+path))
	for _, line := range SummaryLines(p) {
		s.info(ctx, "   "+line)
	}
	s.info(ctx, "")
	s.info(ctx, s.palette.Bold("Next steps"))
	for i, line := range Guidance(p, path) {
		s.info(ctx, fmt.Sprintf("   %d. %s", i+1, line))
	}
}

// SummaryLines describes the generated contract for display.
func SummaryLines(p params.GenerationParameters) []string {
	return []string{
		"Contract:        " + p.ContractName(),
		fmt.Sprintf("Parachain ID:    %d", p.TargetParachainID),
		"Account format:  " + p.AccountFormat.Label(),
		"XCM precompile:  " + p.PrecompileAddress,
		fmt.Sprintf("Pallet index:    %d", p.PalletIndex),
		fmt.Sprintf("Default weight:  %d", p.DefaultWeight),
	}
}

// Guidance lists the follow-up steps after generation.
func Guidance(p params.GenerationParameters, path string) []string {
	return []string{
		"Install the OpenZeppelin contracts: npm install @openzeppelin/contracts",
		fmt.Sprintf("Compile %s with solc ^0.8.20 (Hardhat, Foundry or Remix).", path),
		fmt.Sprintf("Deploy %s passing the XCM precompile %s to the constructor.", p.ContractName(), p.PrecompileAddress),
		"Call bridgeNative with enough value, or approve the bridge before calling bridgeERC20.",
	}
}

func (s *Session) info(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, msg)
}

var plainText = bluemonday.StrictPolicy()

// helpText strips the inline markup the schema descriptions carry for the
// web form.
func helpText(field model.Field) string {
	return html.UnescapeString(plainText.Sanitize(field.Description))
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
