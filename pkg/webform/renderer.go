package webform

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/render"
	rendertemplate "github.com/goliatone/go-xcmgen/pkg/render/template"
	"github.com/goliatone/go-xcmgen/pkg/render/template/pongo"
)

// RendererOption configures the HTML renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	title            string
	action           string
	downloadAction   string
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk, falling back to
// the embedded bundle for files it does not provide.
func WithTemplatesDir(path string) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) RendererOption {
	return func(cfg *rendererConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) RendererOption {
	return func(cfg *rendererConfig) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Renderer renders the generation form as an HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	cfg       rendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer constructs the HTML renderer applying any provided options.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{
		templateFS:     TemplatesFS(),
		title:          "XCM Bridge Contract Generator",
		action:         PathGenerate,
		downloadAction: PathDownload,
		stylesheet:     PathStatic + "style.css",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := []pongo.Option{
			pongo.WithName("webform"),
			pongo.WithExtension(".html"),
		}
		if cfg.templateDir != "" {
			engineOpts = append(engineOpts, pongo.WithBaseDir(cfg.templateDir))
		}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, pongo.WithFS(cfg.templateFS))
		}
		engine, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("webform renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		policy:    bluemonday.UGCPolicy(),
		cfg:       cfg,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the page for form. Values and errors from options populate
// the controls; a Result adds the generated source and a download form.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("webform renderer: template renderer is nil")
	}

	data := map[string]any{
		"title":           r.cfg.title,
		"summary":         form.Summary,
		"action":          r.cfg.action,
		"download_action": r.cfg.downloadAction,
		"stylesheet":      r.cfg.stylesheet,
		"fields":          r.fieldViews(form, options),
		"form_errors":     options.FormErrors,
	}
	if options.Result != nil {
		data["result"] = resultView{
			ContractName: options.Result.ContractName,
			FileName:     options.Result.FileName,
			Source:       options.Result.Source,
		}
	}

	result, err := r.templates.RenderTemplate("page", data)
	if err != nil {
		return nil, fmt.Errorf("webform renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	InputType   string       `json:"input_type"`
	Value       string       `json:"value"`
	Placeholder string       `json:"placeholder,omitempty"`
	Help        string       `json:"help,omitempty"`
	Required    bool         `json:"required"`
	Pattern     string       `json:"pattern,omitempty"`
	Min         string       `json:"min,omitempty"`
	Max         string       `json:"max,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type resultView struct {
	ContractName string `json:"contract_name"`
	FileName     string `json:"file_name"`
	Source       string `json:"source"`
}

func (r *Renderer) fieldViews(form model.FormModel, options render.RenderOptions) []fieldView {
	views := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		value, ok := options.Values[field.Name]
		if !ok {
			value = field.DefaultString()
		}

		view := fieldView{
			ID:          "field-" + field.Name,
			Name:        field.Name,
			Label:       field.Label,
			InputType:   inputType(field),
			Value:       value,
			Placeholder: field.Placeholder,
			Help:        r.policy.Sanitize(field.Description),
			Required:    field.Required,
			Errors:      options.Errors[field.Name],
		}
		if view.Label == "" {
			view.Label = model.Label(field.Name)
		}
		if rule, ok := field.Rule(model.ValidationRulePattern); ok {
			view.Pattern = rule.Params["pattern"]
		}
		if rule, ok := field.Rule(model.ValidationRuleMin); ok {
			view.Min = rule.Params["value"]
		}
		if rule, ok := field.Rule(model.ValidationRuleMax); ok {
			view.Max = rule.Params["value"]
		}
		for _, opt := range field.Options {
			view.Options = append(view.Options, optionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == value,
			})
		}
		views = append(views, view)
	}
	return views
}

func inputType(field model.Field) string {
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		// Browsers round number inputs above 2^53.
		if field.Bits() > 32 {
			return "text"
		}
		return "number"
	default:
		return "text"
	}
}
