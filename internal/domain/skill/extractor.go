// Package skill recognises canonical skills in free text and compares skill
// names the way the matching engine expects.
package skill

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

type pattern struct {
	name string
	re   *regexp.Regexp
}

var patterns = compile(Vocabulary)

// A boundary is anything other than an ASCII letter or digit, so "java" does
// not match inside "javascript" while "c++" and ".net" still match as written.
func compile(vocab []Keyword) []pattern {
	out := make([]pattern, 0, len(vocab))
	for _, k := range vocab {
		pat := `(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(k.Name) + `([^a-z0-9]|$)`
		out = append(out, pattern{name: k.Name, re: regexp.MustCompile(pat)})
	}
	return out
}

// Extract returns the sorted, de-duplicated canonical skills mentioned in text.
func Extract(text string) []string {
	out := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return out
	}

	seen := make(map[string]struct{})
	for _, p := range patterns {
		if _, ok := seen[p.name]; ok {
			continue
		}
		if p.re.MatchString(text) {
			seen[p.name] = struct{}{}
			out = append(out, p.name)
		}
	}
	sort.Strings(out)
	return out
}

// Normalize lowercases and trims a skill name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether two skill names refer to the same skill: after
// normalisation, either contains the other ("react.js" and "react" match).
func Matches(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// HasSkill reports whether any of have matches want.
func HasSkill(have []string, want string) bool {
	for _, h := range have {
		if Matches(h, want) {
			return true
		}
	}
	return false
}

// ParseList turns a stored skills value into normalised names. The value can
// be a JSON array, a Postgres array literal or comma/semicolon separated text.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			items = nil
		}
	}
	if items == nil {
		trimmed := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
		trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
		items = strings.FieldsFunc(trimmed, func(r rune) bool { return r == ',' || r == ';' })
	}

	return Dedupe(items)
}

// Dedupe normalises names and drops blanks and duplicates, keeping first-seen order.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		n := Normalize(strings.Trim(strings.TrimSpace(it), `"`))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
