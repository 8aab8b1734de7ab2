package styles

import (
	"strings"
	"unicode"
)

// ToCodeName converts a display name to lower camel case.
//
//   - "Brand Blue"     → brandBlue
//   - "Heading/Large"  → headingLarge
//   - "URL tint"       → urlTint
//   - "500 Gray"       → _500Gray
func ToCodeName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return ""
	}

	for i, part := range parts {
		runes := []rune(part)
		if i == 0 {
			if isUpper(part) {
				parts[i] = strings.ToLower(part)
				continue
			}
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		parts[i] = string(runes)
	}

	result := strings.Join(parts, "")

	// Identifiers cannot start with a digit in most target languages
	if unicode.IsDigit([]rune(result)[0]) {
		result = "_" + result
	}

	return result
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
