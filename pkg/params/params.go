package params

import (
	"strconv"
	"strings"
	"unicode"
)

// Field identifiers shared by the schema document, the web form and the
// wizard. They match the JSON names of GenerationParameters.
const (
	FieldProjectName       = "projectName"
	FieldAuthorName        = "authorName"
	FieldTargetParachainID = "targetParachainId"
	FieldAccountFormat     = "accountFormat"
	FieldPrecompileAddress = "precompileAddress"
	FieldPalletIndex       = "palletIndex"
	FieldDefaultWeight     = "defaultWeight"
)

// ContractSuffix is appended to the stripped project name to form the
// contract identifier.
const ContractSuffix = "Bridge"

// GenerationParameters is the input record for a single render.
type GenerationParameters struct {
	ProjectName       string        `json:"projectName" yaml:"projectName" validate:"required,xcmident"`
	AuthorName        string        `json:"authorName" yaml:"authorName"`
	TargetParachainID uint32        `json:"targetParachainId" yaml:"targetParachainId"`
	AccountFormat     AccountFormat `json:"accountFormat" yaml:"accountFormat" validate:"required,oneof=ethereum substrate"`
	PrecompileAddress string        `json:"precompileAddress" yaml:"precompileAddress" validate:"required,xcmaddress"`
	PalletIndex       uint8         `json:"palletIndex" yaml:"palletIndex"`
	DefaultWeight     uint64        `json:"defaultWeight" yaml:"defaultWeight"`
}

// Defaults mirrors the values pre-filled by both front ends.
func Defaults() GenerationParameters {
	return GenerationParameters{
		ProjectName:       "DeryBridge",
		AuthorName:        "Dery",
		TargetParachainID: 2004,
		AccountFormat:     AccountFormatEthereum,
		PrecompileAddress: "0x0000000000000000000000000000000000000804",
		PalletIndex:       50,
		DefaultWeight:     1000000000,
	}
}

// FieldNames lists the parameter fields in prompt order.
func FieldNames() []string {
	return []string{
		FieldProjectName,
		FieldAuthorName,
		FieldTargetParachainID,
		FieldAccountFormat,
		FieldPrecompileAddress,
		FieldPalletIndex,
		FieldDefaultWeight,
	}
}

// StripWhitespace removes every whitespace rune from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ContractName is the project name without whitespace plus ContractSuffix.
func (p GenerationParameters) ContractName() string {
	return StripWhitespace(p.ProjectName) + ContractSuffix
}

// Normalize trims text fields and replaces empty project and author names
// with the supplied fallbacks (typically Defaults()).
func (p GenerationParameters) Normalize(fallback GenerationParameters) GenerationParameters {
	p.ProjectName = strings.TrimSpace(p.ProjectName)
	p.AuthorName = strings.TrimSpace(p.AuthorName)
	p.PrecompileAddress = strings.TrimSpace(p.PrecompileAddress)
	if p.ProjectName == "" {
		p.ProjectName = fallback.ProjectName
	}
	if p.AuthorName == "" {
		p.AuthorName = fallback.AuthorName
	}
	if p.AccountFormat == "" {
		p.AccountFormat = fallback.AccountFormat
	}
	if p.PrecompileAddress == "" {
		p.PrecompileAddress = fallback.PrecompileAddress
	}
	return p
}

// Values returns the textual form of every field keyed by field name.
func (p GenerationParameters) Values() map[string]string {
	return map[string]string{
		FieldProjectName:       p.ProjectName,
		FieldAuthorName:        p.AuthorName,
		FieldTargetParachainID: strconv.FormatUint(uint64(p.TargetParachainID), 10),
		FieldAccountFormat:     p.AccountFormat.String(),
		FieldPrecompileAddress: p.PrecompileAddress,
		FieldPalletIndex:       strconv.FormatUint(uint64(p.PalletIndex), 10),
		FieldDefaultWeight:     strconv.FormatUint(p.DefaultWeight, 10),
	}
}
