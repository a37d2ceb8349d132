// Package contract renders the Solidity XCM bridge contract for a set of
// generation parameters. The source is assembled from an ordered list of
// typed sections, each rendered from its own template.
package contract

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/render/template"
	"github.com/goliatone/go-xcmgen/pkg/render/template/pongo"
)

// TemplateExtension is the file extension of section templates.
const TemplateExtension = ".sol.tpl"

//go:embed templates/*.sol.tpl
var embeddedTemplates embed.FS

// Templates exposes the embedded section templates rooted at their directory.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("contract: embedded templates: %v", err))
	}
	return sub
}

// RenderedContract is the generated source text.
type RenderedContract string

func (c RenderedContract) String() string {
	return string(c)
}

// Bytes returns the source as a byte slice.
func (c RenderedContract) Bytes() []byte {
	return []byte(c)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock read once per render for the doc block timestamp.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithTemplateFS replaces the embedded section templates.
func WithTemplateFS(files fs.FS) Option {
	return func(r *Renderer) {
		r.templates = files
	}
}

// WithTemplateDir loads section templates from dir, falling back to the
// embedded set for sections the directory does not provide.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithEngine uses a preconfigured template engine. Template options are
// ignored when an engine is supplied.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// Renderer turns GenerationParameters into contract source. It is safe for
// concurrent use.
type Renderer struct {
	engine      template.TemplateRenderer
	templates   fs.FS
	templateDir string
	clock       func() time.Time
}

// New builds a Renderer backed by the pongo2 engine unless WithEngine is
// given.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: Templates(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if r.engine == nil {
		if r.templates == nil && r.templateDir == "" {
			return nil, errors.New("contract: no section templates configured")
		}
		engineOpts := []pongo.Option{
			pongo.WithName("contract"),
			pongo.WithExtension(TemplateExtension),
			pongo.WithTrimBlocks(true),
		}
		if r.templateDir != "" {
			engineOpts = append(engineOpts, pongo.WithBaseDir(r.templateDir))
		}
		if r.templates != nil {
			engineOpts = append(engineOpts, pongo.WithFS(r.templates))
		}
		engine, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("contract: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render builds and renders the contract for p.
func (r *Renderer) Render(p params.GenerationParameters) (RenderedContract, error) {
	return r.RenderDocument(Build(p, r.clock()))
}

// RenderDocument renders every section of doc in order.
func (r *Renderer) RenderDocument(doc Document) (RenderedContract, error) {
	var out strings.Builder
	for i, section := range doc.Sections {
		text, err := r.RenderSection(section)
		if err != nil {
			return "", err
		}
		if i > 0 && !section.Tight {
			out.WriteString("\n")
		}
		out.WriteString(text)
	}
	return RenderedContract(out.String()), nil
}

// RenderSection renders a single section.
func (r *Renderer) RenderSection(section Section) (string, error) {
	text, err := r.engine.RenderTemplate(section.Template(), section.Data)
	if err != nil {
		return "", fmt.Errorf("contract: render %s: %w", section.Kind, err)
	}
	return text, nil
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// Render renders p with the embedded templates and the wall clock.
func Render(p params.GenerationParameters) (RenderedContract, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = New()
	})
	if defaultErr != nil {
		return "", defaultErr
	}
	return defaultRenderer.Render(p)
}
