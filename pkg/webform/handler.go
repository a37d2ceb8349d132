// Package webform serves the browser form that collects generation parameters
// and returns the rendered contract inline or as a download.
package webform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/render"
	"github.com/goliatone/go-xcmgen/pkg/schema"
)

// Routes served by the handler.
const (
	PathForm     = "/"
	PathGenerate = "/generate"
	PathDownload = "/download"
	PathHealth   = "/healthz"
	PathSchema   = "/schema.json"
	PathStatic   = "/static/"
)

// maxFormBytes bounds the size of a submitted form body.
const maxFormBytes = 64 << 10

// Option configures a Handler.
type Option func(*Handler)

// WithForm uses a prebuilt form model instead of loading the embedded schema.
func WithForm(form model.FormModel) Option {
	return func(h *Handler) {
		h.form = &form
	}
}

// WithDefaults sets the values pre-filled in the form and used for blank
// submissions.
func WithDefaults(p params.GenerationParameters) Option {
	return func(h *Handler) {
		h.defaults = p
	}
}

// WithContractRenderer supplies the contract renderer.
func WithContractRenderer(r *contract.Renderer) Option {
	return func(h *Handler) {
		if r != nil {
			h.contracts = r
		}
	}
}

// WithPageRenderer replaces the HTML page renderer.
func WithPageRenderer(r render.Renderer) Option {
	return func(h *Handler) {
		if r != nil {
			h.pages = r
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler is the http.Handler for the form service.
type Handler struct {
	form      *model.FormModel
	defaults  params.GenerationParameters
	contracts *contract.Renderer
	pages     render.Renderer
	logger    logrus.FieldLogger
	root      http.Handler
}

// New builds the handler, loading the embedded schema with the configured
// defaults unless WithForm is given.
func New(ctx context.Context, opts ...Option) (*Handler, error) {
	h := &Handler{defaults: params.Defaults()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}

	if h.form == nil {
		form, err := schema.Load(ctx, schema.WithDefaults(h.defaults))
		if err != nil {
			return nil, fmt.Errorf("webform: %w", err)
		}
		h.form = &form
	}
	if h.contracts == nil {
		r, err := contract.New()
		if err != nil {
			return nil, fmt.Errorf("webform: %w", err)
		}
		h.contracts = r
	}
	if h.pages == nil {
		r, err := NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("webform: %w", err)
		}
		h.pages = r
	}
	if h.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		h.logger = logger
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathForm+"{$}", h.handleForm)
	mux.HandleFunc("POST "+PathGenerate, h.handleGenerate)
	mux.HandleFunc("POST "+PathDownload, h.handleDownload)
	mux.HandleFunc("GET "+PathSchema, h.handleSchema)
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET "+PathStatic, http.StripPrefix(PathStatic, http.FileServerFS(StaticFS())))

	h.root = RequestLogger(h.logger)(mux)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, http.StatusOK, render.RenderOptions{})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	values, p, err := h.parse(w, r)
	if err != nil {
		var fieldErrs params.FieldErrors
		if !errors.As(err, &fieldErrs) {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		mapping := render.MapErrorPayload(*h.form, render.FieldErrorPayload(fieldErrs))
		h.writePage(w, r, http.StatusUnprocessableEntity, render.RenderOptions{
			Values:     values,
			Errors:     mapping.Fields,
			FormErrors: mapping.Form,
		})
		return
	}

	source, err := h.contracts.Render(p)
	if err != nil {
		h.fail(w, r, "render contract", err)
		return
	}
	h.writePage(w, r, http.StatusOK, render.RenderOptions{
		Values: p.Values(),
		Result: &render.Result{
			ContractName: p.ContractName(),
			FileName:     output.FileName(p, output.DefaultExtension),
			Source:       source.String(),
		},
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, p, err := h.parse(w, r)
	if err != nil {
		var fieldErrs params.FieldErrors
		if !errors.As(err, &fieldErrs) {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		http.Error(w, fieldMessages(*h.form, fieldErrs), http.StatusUnprocessableEntity)
		return
	}

	source, err := h.contracts.Render(p)
	if err != nil {
		h.fail(w, r, "render contract", err)
		return
	}

	name := output.FileName(p, output.DefaultExtension)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(source.Bytes())
}

func (h *Handler) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(h.form)
}

// parse reads the submitted fields. Only fields present in the form model are
// considered; blank entries fall back to the configured defaults.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (map[string]string, params.GenerationParameters, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, params.GenerationParameters{}, fmt.Errorf("webform: parse form: %w", err)
	}

	values := make(map[string]string, len(h.form.Fields))
	for _, field := range h.form.Fields {
		if _, ok := r.PostForm[field.Name]; ok {
			values[field.Name] = r.PostForm.Get(field.Name)
		}
	}
	p, err := params.FromValues(values, h.defaults)
	return values, p, err
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	page, err := h.pages.Render(r.Context(), *h.form, opts)
	if err != nil {
		h.fail(w, r, "render page", err)
		return
	}
	w.Header().Set("Content-Type", h.pages.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(page)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.logger.WithError(err).WithField("path", r.URL.Path).Error(action)
	http.Error(w, fmt.Sprintf("%s: internal error", action), http.StatusInternalServerError)
}

// fieldMessages formats validation errors one per line in form order using
// field labels. Fields the form does not show follow in name order.
func fieldMessages(form model.FormModel, errs params.FieldErrors) string {
	lines := make([]string, 0, len(errs))
	seen := make(map[string]struct{}, len(errs))
	for _, field := range form.Fields {
		msg, ok := errs[field.Name]
		if !ok {
			continue
		}
		seen[field.Name] = struct{}{}
		label := field.Label
		if label == "" {
			label = model.Label(field.Name)
		}
		lines = append(lines, label+": "+msg)
	}
	rest := make([]string, 0, len(errs)-len(seen))
	for name := range errs {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		lines = append(lines, model.Label(name)+": "+errs[name])
	}
	return strings.Join(lines, "\n")
}
