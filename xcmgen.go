// Package xcmgen generates Solidity contracts that bridge native and ERC-20
// assets to another parachain through the XCM precompile. The root package
// re-exports the most common entry points; the pkg/ packages hold the
// building blocks.
package xcmgen

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/orchestrator"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/webform"
)

// Parameters aliases the generation input record.
type Parameters = params.GenerationParameters

// AccountFormat aliases the beneficiary encoding selector.
type AccountFormat = params.AccountFormat

// RenderedContract aliases the generated source text.
type RenderedContract = contract.RenderedContract

const (
	AccountFormatEthereum  = params.AccountFormatEthereum
	AccountFormatSubstrate = params.AccountFormatSubstrate
)

// DefaultParameters returns the values pre-filled by the wizard and web form.
func DefaultParameters() Parameters {
	return params.Defaults()
}

// Validate checks p and returns params.FieldErrors on failure.
func Validate(p Parameters) error {
	return params.Validate(p)
}

// Generate renders the contract for p with the embedded templates. Values are
// embedded verbatim; call Validate first for untrusted input.
func Generate(ctx context.Context, p Parameters) (RenderedContract, error) {
	if ctx == nil {
		return "", errors.New("xcmgen: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return contract.Render(p)
}

// GenerateFromValues parses and validates textual values keyed by field name,
// filling blanks from DefaultParameters, and renders the contract.
func GenerateFromValues(ctx context.Context, values map[string]string, options ...orchestrator.Option) (orchestrator.Result, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Values: values})
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FileName returns the artifact name for p, "<ContractName>.sol".
func FileName(p Parameters) string {
	return output.FileName(p, output.DefaultExtension)
}

// EmbeddedTemplates exposes the built-in contract section templates so callers
// can copy and override them with contract.WithTemplateDir.
func EmbeddedTemplates() fs.FS {
	return contract.Templates()
}

// WebAssetsFS exposes the stylesheet served by the web form.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(xcmgen.WebAssetsFS()),
//	  ),
//	)
func WebAssetsFS() fs.FS {
	return webform.StaticFS()
}
