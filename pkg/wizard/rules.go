package wizard

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/params"
)

type validationRules struct {
	required bool
	bits     int
	min      *uint64
	max      *uint64
	minLen   *int
	pattern  *regexp.Regexp
	address  bool
}

func collectValidationRules(field model.Field) validationRules {
	rules := validationRules{
		required: field.Required,
		bits:     field.Bits(),
		address:  field.Format == "address",
	}
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleMin:
			if val, err := strconv.ParseUint(v.Params["value"], 10, 64); err == nil {
				rules.min = &val
			}
		case model.ValidationRuleMax:
			if val, err := strconv.ParseUint(v.Params["value"], 10, 64); err == nil {
				rules.max = &val
			}
		case model.ValidationRuleMinLength:
			if val, err := strconv.Atoi(v.Params["value"]); err == nil {
				rules.minLen = &val
			}
		case model.ValidationRulePattern:
			if expr := v.Params["pattern"]; expr != "" {
				if re, err := regexp.Compile(expr); err == nil {
					rules.pattern = re
				}
			}
		}
	}
	return rules
}

func (r validationRules) validateString(value string) error {
	if r.required && strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	if r.minLen != nil && len(strings.TrimSpace(value)) < *r.minLen {
		return fmt.Errorf("min length %d", *r.minLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		if r.address {
			return errors.New("must be 0x followed by 40 hexadecimal characters")
		}
		return errors.New("does not match required pattern")
	}
	return nil
}

func (r validationRules) parseInteger(raw string) (uint64, error) {
	n, err := params.ParseUint(raw, r.bits)
	if err != nil {
		return 0, err
	}
	if r.min != nil && n < *r.min {
		return 0, fmt.Errorf("min %d", *r.min)
	}
	if r.max != nil && n > *r.max {
		return 0, fmt.Errorf("max %d", *r.max)
	}
	return n, nil
}
