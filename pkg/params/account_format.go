package params

import (
	"fmt"
	"strings"
)

// AccountFormat selects how the beneficiary account is encoded inside the
// destination descriptor.
type AccountFormat string

const (
	// AccountFormatEthereum encodes beneficiaries as 20-byte AccountKey20 values.
	AccountFormatEthereum AccountFormat = "ethereum"
	// AccountFormatSubstrate encodes beneficiaries as 32-byte AccountId32 values.
	AccountFormatSubstrate AccountFormat = "substrate"
)

// Encoding describes the account junction emitted for a format.
type Encoding struct {
	Junction      string
	Discriminator [2]uint8
	Length        int
}

var encodings = map[AccountFormat]Encoding{
	AccountFormatEthereum: {
		Junction:      "AccountKey20",
		Discriminator: [2]uint8{1, 0},
		Length:        20,
	},
	AccountFormatSubstrate: {
		Junction:      "AccountId32",
		Discriminator: [2]uint8{0, 0},
		Length:        32,
	},
}

var labels = map[AccountFormat]string{
	AccountFormatEthereum:  "Ethereum (20 bytes)",
	AccountFormatSubstrate: "Substrate (32 bytes)",
}

// AccountFormats lists the supported formats in display order.
func AccountFormats() []AccountFormat {
	return []AccountFormat{AccountFormatEthereum, AccountFormatSubstrate}
}

// ParseAccountFormat accepts the wire name ("ethereum"), the display label
// ("Ethereum (20 bytes)"), the junction name ("AccountKey20") or the byte
// width ("20").
func ParseAccountFormat(raw string) (AccountFormat, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", fmt.Errorf("params: account format is empty")
	}
	for _, format := range AccountFormats() {
		enc := encodings[format]
		switch value {
		case string(format),
			strings.ToLower(labels[format]),
			strings.ToLower(enc.Junction),
			fmt.Sprint(enc.Length):
			return format, nil
		}
	}
	return "", fmt.Errorf("params: unknown account format %q", raw)
}

// Valid reports whether f is one of the supported formats.
func (f AccountFormat) Valid() bool {
	_, ok := encodings[f]
	return ok
}

// String returns the wire name.
func (f AccountFormat) String() string {
	return string(f)
}

// Label returns the human readable name shown by both front ends.
func (f AccountFormat) Label() string {
	if label, ok := labels[f]; ok {
		return label
	}
	return string(f)
}

// Encoding returns the junction layout for f. Unknown formats fall back to
// the 32-byte layout so rendering never fails on an unchecked value.
func (f AccountFormat) Encoding() Encoding {
	if enc, ok := encodings[f]; ok {
		return enc
	}
	return encodings[AccountFormatSubstrate]
}

// ByteLength is the expected beneficiary width in bytes.
func (f AccountFormat) ByteLength() int {
	return f.Encoding().Length
}

// Discriminator is the byte pair prefixed to the beneficiary in the account hop.
func (f AccountFormat) Discriminator() [2]uint8 {
	return f.Encoding().Discriminator
}

// Junction names the XCM junction used for the account hop.
func (f AccountFormat) Junction() string {
	return f.Encoding().Junction
}
