package domain

import "strings"

// FoldKey lowercases s and strips spaces, dashes and underscores so that
// "Full-time", "full time" and "FULL_TIME" compare equal.
func FoldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	b := strings.Builder{}
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '-', '_', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseOrDefault looks raw up in table by its folded key. When raw is blank or
// unknown it returns def and reports that the default was substituted.
func ParseOrDefault[T any](raw string, def T, table map[string]T) (T, bool) {
	key := FoldKey(raw)
	if key == "" {
		return def, true
	}
	v, ok := table[key]
	if !ok {
		return def, true
	}
	return v, false
}
