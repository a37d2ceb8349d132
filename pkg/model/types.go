package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is a selectable value for enum fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input.
type Field struct {
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Format      string           `json:"format,omitempty"`
	Required    bool             `json:"required"`
	Label       string           `json:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Description string           `json:"description,omitempty"`
	Default     any              `json:"default,omitempty"`
	Options     []Option         `json:"options,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
}

// FormModel is the ordered field list plus the operation it submits to.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field looks up a field by name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// DefaultString renders the default value the way a user would type it.
func (f Field) DefaultString() string {
	switch v := f.Default.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Rule returns the first validation rule of kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Bits reports the integer width declared through formats such as "uint32".
// Fields without a sized format report 64.
func (f Field) Bits() int {
	format := strings.TrimPrefix(strings.TrimPrefix(f.Format, "u"), "int")
	if bits, err := strconv.Atoi(format); err == nil && bits > 0 && bits <= 64 {
		return bits
	}
	return 64
}

// OptionIndex returns the position of value within Options or -1.
func (f Field) OptionIndex(value string) int {
	for i, opt := range f.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
