package schema

import _ "embed"

//go:embed generation.json
var generationDocument []byte

// Document returns a copy of the embedded OpenAPI document describing the
// generation parameters.
func Document() []byte {
	return append([]byte(nil), generationDocument...)
}
