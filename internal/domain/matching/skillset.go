package matching

import (
	"sort"
	"strings"
)

// SkillSet holds lowercase, trimmed, non-empty skill tokens.
type SkillSet map[string]struct{}

// Normalize splits a comma-delimited skill string into a SkillSet.
func Normalize(raw string) SkillSet {
	out := make(SkillSet)
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		tok := strings.TrimSpace(strings.ToLower(part))
		if tok == "" {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Empty() bool {
	return len(s) == 0
}

func (s SkillSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Tokens returns the tokens in lexical order.
func (s SkillSet) Tokens() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
