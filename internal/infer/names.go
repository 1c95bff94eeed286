package infer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const fallbackAlphabet = "abcdefghijklmnopqrstuvwxyz"

// ResolveNames determines the display name of every column. Exactly one
// naming source is used per run: an explicit override list wins over the
// header row, which wins over the fallback letter sequence.
func ResolveNames(override, header []string, columns int) ([]string, error) {
	if len(override) > 0 {
		if len(override) != columns {
			return nil, fmt.Errorf("%w: %d names for %d columns",
				ErrColumnCount, len(override), columns)
		}
		return override, nil
	}

	if header != nil {
		names := make([]string, len(header))
		for i, h := range header {
			names[i] = normalizeName(h)
		}
		return names, nil
	}

	if columns > len(fallbackAlphabet) {
		return nil, fmt.Errorf("%w: %d columns", ErrTooManyColumns, columns)
	}
	names := make([]string, columns)
	for i := range names {
		names[i] = string(fallbackAlphabet[i])
	}
	return names, nil
}

// normalizeName lowercases a header field and replaces whitespace with
// underscores.
func normalizeName(h string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return unicode.ToLower(r)
	}, h)
}

// TableName picks the table name: explicit override, then the source file's
// base name without extension, then a fixed fallback.
func TableName(override, source string) string {
	if override != "" {
		return override
	}
	if source != "" && source != "-" {
		base := filepath.Base(source)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "csvddl"
}
