package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-xcmgen/pkg/params"
)

// TimestampLayout is the layout of the generation timestamp embedded in the
// doc block.
const TimestampLayout = "2006-01-02 15:04"

// Generator names the tool in the generated doc block.
const Generator = "xcmgen"

const (
	license = "MIT"
	pragma  = "^0.8.20"
)

// LengthError is the revert reason used when the beneficiary byte length does
// not match BENEFICIARY_LENGTH.
const LengthError = "Beneficiary length mismatch"

// Imports are the fixed OpenZeppelin dependencies of every generated contract.
var Imports = []string{
	"@openzeppelin/contracts/access/Ownable.sol",
	"@openzeppelin/contracts/utils/ReentrancyGuard.sol",
	"@openzeppelin/contracts/token/ERC20/utils/SafeERC20.sol",
	"@openzeppelin/contracts/token/ERC20/IERC20.sol",
}

// SectionKind identifies a block of the generated source.
type SectionKind string

const (
	SectionPreamble      SectionKind = "preamble"
	SectionImports       SectionKind = "imports"
	SectionDoc           SectionKind = "doc"
	SectionDeclaration   SectionKind = "declaration"
	SectionConfiguration SectionKind = "configuration"
	SectionEvents        SectionKind = "events"
	SectionConstructor   SectionKind = "constructor"
	SectionNativeBridge  SectionKind = "native_bridge"
	SectionTokenBridge   SectionKind = "token_bridge"
	SectionAdmin         SectionKind = "admin"
	SectionRescue        SectionKind = "rescue"
	SectionFallback      SectionKind = "fallback"
	SectionClose         SectionKind = "close"
)

// Section is one rendered block. Data is one of the section data types below
// (or nil for static blocks). Tight sections follow the previous section
// without a separating blank line.
type Section struct {
	Kind  SectionKind
	Data  any
	Tight bool
}

// Template is the template name used to render the section.
func (s Section) Template() string {
	return string(s.Kind)
}

// Document is the ordered list of sections for one contract.
type Document struct {
	ContractName string
	GeneratedAt  time.Time
	Sections     []Section
}

// Section returns the first section of kind.
func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, section := range d.Sections {
		if section.Kind == kind {
			return section, true
		}
	}
	return Section{}, false
}

// PreambleData fills the license identifier and pragma line.
type PreambleData struct {
	License string `json:"license"`
	Pragma  string `json:"pragma"`
}

// ImportsData lists the import paths in emission order.
type ImportsData struct {
	Paths []string `json:"paths"`
}

// DocData fills the NatSpec block above the contract.
type DocData struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Timestamp  string `json:"timestamp"`
	Generator  string `json:"generator"`
	Precompile string `json:"precompile"`
}

// DeclarationData names the contract.
type DeclarationData struct {
	Name string `json:"name"`
}

// ConfigurationData carries integers already formatted in base 10 so wide
// values survive template data normalisation.
type ConfigurationData struct {
	ParachainID       string `json:"parachain_id"`
	BeneficiaryLength string `json:"beneficiary_length"`
	DefaultWeight     string `json:"default_weight"`
	PalletIndex       string `json:"pallet_index"`
}

// BridgeData is shared by the native and token bridge sections.
type BridgeData struct {
	LengthError   string `json:"length_error"`
	Destination   string `json:"destination"`
	AssetLocation string `json:"asset_location,omitempty"`
}

// beneficiaryEncoding is the account-format specific part of the
// destination descriptor.
type beneficiaryEncoding struct {
	discriminator string
	length        int
}

var beneficiaryEncodings = func() map[params.AccountFormat]beneficiaryEncoding {
	out := make(map[params.AccountFormat]beneficiaryEncoding)
	for _, format := range params.AccountFormats() {
		enc := format.Encoding()
		out[format] = beneficiaryEncoding{
			discriminator: fmt.Sprintf("uint8(%d), uint8(%d)", enc.Discriminator[0], enc.Discriminator[1]),
			length:        enc.Length,
		}
	}
	return out
}()

func encodingFor(format params.AccountFormat) beneficiaryEncoding {
	if enc, ok := beneficiaryEncodings[format]; ok {
		return enc
	}
	return beneficiaryEncodings[params.AccountFormatSubstrate]
}

// DestinationDescriptor is the packed argument list describing the target
// chain and beneficiary: parents 1, two interior hops, Parachain(id) and the
// account junction selected by format.
func DestinationDescriptor(format params.AccountFormat) string {
	return strings.Join([]string{
		"uint8(1)",
		"uint8(2)",
		"uint8(0)",
		"uint32(DESTINATION_PARA_ID)",
		encodingFor(format).discriminator,
		"beneficiaryBytes",
	}, ", ")
}

// AssetLocationDescriptor is the packed argument list locating an ERC-20
// token: parents 1, PalletInstance(palletIndex), GeneralIndex(token).
func AssetLocationDescriptor() string {
	return strings.Join([]string{
		"uint8(1)",
		"uint8(2)",
		"uint8(3)",
		"uint8(palletIndex)",
		"uint8(0)",
		"uint128(uint160(tokenAddress))",
	}, ", ")
}

// Build assembles the section list for p. Values are used verbatim; callers
// validate beforehand.
func Build(p params.GenerationParameters, now time.Time) Document {
	enc := encodingFor(p.AccountFormat)
	bridge := BridgeData{
		LengthError: LengthError,
		Destination: DestinationDescriptor(p.AccountFormat),
	}
	token := bridge
	token.AssetLocation = AssetLocationDescriptor()

	return Document{
		ContractName: p.ContractName(),
		GeneratedAt:  now,
		Sections: []Section{
			{Kind: SectionPreamble, Data: PreambleData{License: license, Pragma: pragma}},
			{Kind: SectionImports, Data: ImportsData{Paths: append([]string(nil), Imports...)}},
			{Kind: SectionDoc, Data: DocData{
				Title:      p.ProjectName,
				Author:     p.AuthorName,
				Timestamp:  now.Format(TimestampLayout),
				Generator:  Generator,
				Precompile: p.PrecompileAddress,
			}},
			{Kind: SectionDeclaration, Data: DeclarationData{Name: p.ContractName()}, Tight: true},
			{Kind: SectionConfiguration, Data: ConfigurationData{
				ParachainID:       strconv.FormatUint(uint64(p.TargetParachainID), 10),
				BeneficiaryLength: strconv.Itoa(enc.length),
				DefaultWeight:     strconv.FormatUint(p.DefaultWeight, 10),
				PalletIndex:       strconv.FormatUint(uint64(p.PalletIndex), 10),
			}},
			{Kind: SectionEvents},
			{Kind: SectionConstructor},
			{Kind: SectionNativeBridge, Data: bridge},
			{Kind: SectionTokenBridge, Data: token},
			{Kind: SectionAdmin},
			{Kind: SectionRescue},
			{Kind: SectionFallback},
			{Kind: SectionClose, Tight: true},
		},
	}
}
