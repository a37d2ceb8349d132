package model

import (
	"strings"
	"unicode"
)

var acronyms = map[string]string{
	"id":  "ID",
	"xcm": "XCM",
	"erc": "ERC",
}

// Label derives a display label from a camelCase or snake_case field name,
// e.g. "targetParachainId" becomes "Target Parachain ID".
func Label(name string) string {
	if name == "" {
		return ""
	}
	words := strings.FieldsFunc(splitCamel(name), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, word := range words {
		lower := strings.ToLower(word)
		if acronym, ok := acronyms[lower]; ok {
			words[i] = acronym
			continue
		}
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			if (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
				(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
				(unicode.IsDigit(prev) && unicode.IsLetter(r)) {
				out.WriteRune(' ')
			}
		}
		out.WriteRune(r)
	}
	return out.String()
}
