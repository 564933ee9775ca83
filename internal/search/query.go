package search

import (
	"strings"
	"unicode"
)

type QueryContext struct {
	Original   string
	Keyword    string
	Normalized string
	Variants   []string
}

const maxVariants = 10

// Interchangeable spellings. Every member expands to the others.
var synonymGroups = [][]string{
	{"golang", "go"},
	{"javascript", "js"},
	{"typescript", "ts"},
	{"kubernetes", "k8s"},
	{"postgresql", "postgres"},
}

// One-way expansions for role names.
var roleAliases = map[string][]string{
	"frontend": {"front end", "ui developer"},
	"backend":  {"back end", "server developer"},
	"devops":   {"site reliability", "sre"},
}

var synonyms = buildSynonyms()

func buildSynonyms() map[string][]string {
	out := make(map[string][]string, len(roleAliases)+2*len(synonymGroups))
	for term, alts := range roleAliases {
		out[term] = alts
	}
	for _, group := range synonymGroups {
		for _, term := range group {
			for _, other := range group {
				if other != term {
					out[term] = append(out[term], other)
				}
			}
		}
	}
	return out
}

// Keyword is the raw filter term: trimmed and lowercased, punctuation kept so
// terms like "c++" or "node.js" still match literally.
func Keyword(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NormalizeQuery lowercases and splits on whitespace and - _ . / separators.
// Letters, digits, + and # survive; other punctuation is dropped.
func NormalizeQuery(input string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			return unicode.ToLower(r)
		case r == '+' || r == '#':
			return r
		case unicode.IsSpace(r) || strings.ContainsRune("-_./", r):
			return ' '
		default:
			return -1
		}
	}, input)
	return strings.Join(strings.Fields(mapped), " ")
}

// ExpandQuery returns the normalized query followed by its synonyms, both for
// the whole phrase and for a leading term that has synonyms.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	variants := []string{normalized}
	variants = append(variants, synonyms[normalized]...)
	if head, rest, ok := strings.Cut(normalized, " "); ok {
		for _, alt := range synonyms[head] {
			variants = append(variants, alt+" "+rest)
		}
	}
	return dedupe(variants, maxVariants)
}

func dedupe(in []string, limit int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	q := QueryContext{Original: input, Keyword: Keyword(input), Normalized: NormalizeQuery(input)}
	q.Variants = ExpandQuery(q.Normalized)
	return q
}
