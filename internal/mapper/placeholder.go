package mapper

import "strings"

// PlaceholderValues are client-supplied strings that mean "no real value
// provided". Generated API clients (Swagger UI and friends) auto-fill text
// fields with these, so the merge logic treats them as absent rather than
// writing them into the database. The list is a package variable so
// deployments can extend it without touching the merge code.
//
// A value that trims to the empty string is handled per field: it clears
// optional free-text fields and is ignored for required ones.
var PlaceholderValues = []string{"string", "null", "undefined"}

// IsPlaceholder reports whether value, after trimming surrounding
// whitespace, is one of the known placeholder sentinels. The comparison is
// case-sensitive: "String" is a plausible real value, "string" is Swagger
// noise.
func IsPlaceholder(value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, p := range PlaceholderValues {
		if trimmed == p {
			return true
		}
	}
	return false
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
