package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromValues builds parameters from textual input such as a submitted form,
// prompt answers or flags. Missing or blank entries keep the value from base.
// Parse failures and validation failures are reported together as
// FieldErrors; a field that failed to parse is not re-reported by validation.
func FromValues(values map[string]string, base GenerationParameters) (GenerationParameters, error) {
	p := base
	errs := FieldErrors{}

	text := func(key string) (string, bool) {
		raw, ok := values[key]
		if !ok {
			return "", false
		}
		raw = strings.TrimSpace(raw)
		return raw, raw != ""
	}

	if v, ok := text(FieldProjectName); ok {
		p.ProjectName = v
	}
	if v, ok := text(FieldAuthorName); ok {
		p.AuthorName = v
	}
	if v, ok := text(FieldTargetParachainID); ok {
		n, err := ParseUint(v, 32)
		if err != nil {
			errs[FieldTargetParachainID] = err.Error()
		} else {
			p.TargetParachainID = uint32(n)
		}
	}
	if v, ok := text(FieldAccountFormat); ok {
		format, err := ParseAccountFormat(v)
		if err != nil {
			errs[FieldAccountFormat] = "must be one of: ethereum, substrate"
		} else {
			p.AccountFormat = format
		}
	}
	if v, ok := text(FieldPrecompileAddress); ok {
		p.PrecompileAddress = v
	}
	if v, ok := text(FieldPalletIndex); ok {
		n, err := ParseUint(v, 8)
		if err != nil {
			errs[FieldPalletIndex] = err.Error()
		} else {
			p.PalletIndex = uint8(n)
		}
	}
	if v, ok := text(FieldDefaultWeight); ok {
		n, err := ParseUint(v, 64)
		if err != nil {
			errs[FieldDefaultWeight] = err.Error()
		} else {
			p.DefaultWeight = n
		}
	}

	p = p.Normalize(base)

	if err := Validate(p); err != nil {
		verrs, ok := err.(FieldErrors)
		if !ok {
			return p, err
		}
		for field, msg := range verrs {
			if _, exists := errs[field]; !exists {
				errs[field] = msg
			}
		}
	}

	if len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

// ParseUint parses a base-10 unsigned integer that must fit in bits. The
// error message is suitable for direct display next to an input.
func ParseUint(raw string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("must be a whole number between 0 and %d", maxUint(bits))
	}
	return n, nil
}

func maxUint(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<uint(bits) - 1
}
