package normalization

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// TruncateWithEllipsis caps s at max characters total. Values at or past
// the max-3 threshold keep their first max-3 characters and get an ellipsis
// marker appended, so nothing stored ever exceeds max. The cut is on rune
// boundaries; a multi-byte name is never split mid-character.
func TruncateWithEllipsis(s string, max int) string {
	keep := max - len(ellipsis)
	if utf8.RuneCountInString(s) < keep {
		return s
	}
	return string([]rune(s)[:keep]) + ellipsis
}

// ParseInt parses s as a base-10 integer, tolerating surrounding whitespace.
func ParseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// TruthyBool is the permissive boolean coercion used for the diagnostic
// field: "yes" and "true" (any casing) are true, everything else is false.
// It never fails on unrecognized input; that permissiveness is intentional
// ingest semantics, not a gap.
func TruthyBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true":
		return true
	}
	return false
}
