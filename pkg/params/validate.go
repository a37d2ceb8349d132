package params

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// AddressPattern matches a 20-byte hex address with 0x prefix.
const AddressPattern = `^0x[0-9a-fA-F]{40}$`

// IdentifierPattern matches a Solidity identifier.
const IdentifierPattern = `^[A-Za-z_$][A-Za-z0-9_$]*$`

var (
	addressRE    = regexp.MustCompile(AddressPattern)
	identifierRE = regexp.MustCompile(IdentifierPattern)

	validateOnce sync.Once
	validate     *validator.Validate
)

// FieldErrors maps field names to a human readable message. It is the error
// type returned by Validate and FromValues.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "params: invalid parameters"
	}
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e[key])
	}
	return "params: invalid parameters: " + strings.Join(parts, "; ")
}

// IsAddress reports whether s is a 0x-prefixed 40 digit hex address.
func IsAddress(s string) bool {
	return addressRE.MatchString(s)
}

// IsIdentifier reports whether the project name forms a valid contract
// identifier once whitespace is removed.
func IsIdentifier(projectName string) bool {
	return identifierRE.MatchString(StripWhitespace(projectName))
}

// Validate checks p against the caller-side constraints. The returned error,
// when non-nil, is a FieldErrors.
func Validate(p GenerationParameters) error {
	err := validatorInstance().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("params: validate: %w", err)
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "xcmaddress":
		return "must be 0x followed by 40 hexadecimal characters"
	case "xcmident":
		return "must form a valid contract identifier once spaces are removed"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("xcmaddress", func(fl validator.FieldLevel) bool {
			return IsAddress(fl.Field().String())
		})
		_ = v.RegisterValidation("xcmident", func(fl validator.FieldLevel) bool {
			return IsIdentifier(fl.Field().String())
		})
		validate = v
	})
	return validate
}
