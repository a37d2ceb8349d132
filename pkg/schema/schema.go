// Package schema loads the OpenAPI document that describes the generation
// parameters and converts it into the form model shared by the wizard and the
// web form.
package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/params"
)

// OperationID identifies the operation whose request body drives the form.
const OperationID = "generateContract"

const (
	extensionOrder        = "x-formgen-order"
	extensionLabel        = "x-formgen-label"
	extensionPlaceholder  = "x-formgen-placeholder"
	extensionOptionLabels = "x-formgen-option-labels"
)

// ErrOperationNotFound is returned when the document lacks OperationID.
var ErrOperationNotFound = errors.New("schema: operation not found")

type config struct {
	document    []byte
	path        string
	operationID string
	defaults    *params.GenerationParameters
	validate    bool
}

// Option customises Load.
type Option func(*config)

// WithDocument replaces the embedded document with raw JSON or YAML bytes.
func WithDocument(raw []byte) Option {
	return func(c *config) {
		c.document = raw
	}
}

// WithDocumentFile reads the document from path on disk.
func WithDocumentFile(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

// WithOperation selects a different operation by id.
func WithOperation(id string) Option {
	return func(c *config) {
		if id != "" {
			c.operationID = id
		}
	}
}

// WithDefaults overrides the document defaults with the supplied parameters,
// typically the values resolved from configuration.
func WithDefaults(p params.GenerationParameters) Option {
	return func(c *config) {
		c.defaults = &p
	}
}

// WithValidation toggles OpenAPI document validation before conversion.
func WithValidation(enabled bool) Option {
	return func(c *config) {
		c.validate = enabled
	}
}

// Load parses the parameter document and returns the ordered form model.
func Load(ctx context.Context, opts ...Option) (model.FormModel, error) {
	cfg := config{
		document:    generationDocument,
		operationID: OperationID,
		validate:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}

	raw := cfg.document
	if cfg.path != "" {
		data, err := os.ReadFile(cfg.path)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("schema: read %s: %w", cfg.path, err)
		}
		raw = data
	}
	if len(raw) == 0 {
		return model.FormModel{}, errors.New("schema: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("schema: load document: %w", err)
	}
	if cfg.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return model.FormModel{}, fmt.Errorf("schema: validate: %w", err)
		}
	}

	method, path, operation := findOperation(doc, cfg.operationID)
	if operation == nil {
		return model.FormModel{}, fmt.Errorf("%w: %s", ErrOperationNotFound, cfg.operationID)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil {
		return model.FormModel{}, fmt.Errorf("schema: operation %s has no request schema", cfg.operationID)
	}

	form := model.FormModel{
		OperationID: cfg.operationID,
		Endpoint:    path,
		Method:      method,
		Summary:     operation.Summary,
		Description: operation.Description,
		Fields:      convertFields(body),
	}
	if cfg.defaults != nil {
		applyDefaults(&form, cfg.defaults.Values())
	}
	return form, nil
}

// MustLoad loads the embedded document and panics on failure. The embedded
// document is covered by tests, so a failure indicates a build problem.
func MustLoad(opts ...Option) model.FormModel {
	form, err := Load(context.Background(), opts...)
	if err != nil {
		panic(err)
	}
	return form
}

func findOperation(doc *openapi3.T, id string) (string, string, *openapi3.Operation) {
	if doc.Paths == nil {
		return "", "", nil
	}
	paths := doc.Paths.InMatchingOrder()
	sort.Strings(paths)
	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation != nil && operation.OperationID == id {
				return strings.ToUpper(method), path, operation
			}
		}
	}
	return "", "", nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertFields(src *openapi3.Schema) []model.Field {
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	fields := make([]model.Field, 0, len(src.Properties))
	for _, name := range propertyOrder(src) {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertField(name, ref.Value, required[name]))
	}
	return fields
}

// propertyOrder honours x-formgen-order and appends any remaining properties
// alphabetically.
func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]bool, len(src.Properties))
	order := make([]string, 0, len(src.Properties))
	for _, name := range stringSlice(src.Extensions[extensionOrder]) {
		if _, ok := src.Properties[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func convertField(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Format:      src.Format,
		Required:    required,
		Label:       stringValue(src.Extensions[extensionLabel]),
		Placeholder: stringValue(src.Extensions[extensionPlaceholder]),
		Description: src.Description,
		Default:     src.Default,
	}
	if field.Label == "" {
		field.Label = model.Label(name)
	}

	if len(src.Enum) > 0 {
		labels := stringMap(src.Extensions[extensionOptionLabels])
		for _, value := range src.Enum {
			raw := fmt.Sprint(value)
			label := labels[raw]
			if label == "" {
				label = raw
			}
			field.Options = append(field.Options, model.Option{Value: raw, Label: label})
		}
	}

	if src.Min != nil {
		field.Validations = append(field.Validations, numberRule(model.ValidationRuleMin, *src.Min))
	}
	if src.Max != nil {
		field.Validations = append(field.Validations, numberRule(model.ValidationRuleMax, *src.Max))
	}
	if src.MinLength != 0 {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return field
}

func numberRule(kind string, value float64) model.ValidationRule {
	return model.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatFloat(value, 'f', -1, 64)},
	}
}

func applyDefaults(form *model.FormModel, values map[string]string) {
	for i := range form.Fields {
		value, ok := values[form.Fields[i].Name]
		if !ok || value == "" {
			continue
		}
		form.Fields[i].Default = value
	}
}

func fieldType(types *openapi3.Types) model.FieldType {
	if types == nil {
		return model.FieldTypeString
	}
	switch {
	case types.Is(openapi3.TypeInteger):
		return model.FieldTypeInteger
	case types.Is(openapi3.TypeNumber):
		return model.FieldTypeNumber
	case types.Is(openapi3.TypeBoolean):
		return model.FieldTypeBoolean
	default:
		return model.FieldTypeString
	}
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringMap(value any) map[string]string {
	switch v := value.(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for key, item := range v {
			if s, ok := item.(string); ok {
				out[key] = s
			}
		}
		return out
	default:
		return nil
	}
}
