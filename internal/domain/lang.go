package domain

import "strings"

// Lang is a bulletin language code.
type Lang string

const (
	LangDE Lang = "de"
	LangEN Lang = "en"
	LangIT Lang = "it"
	LangHR Lang = "hr"
	LangFR Lang = "fr"
)

// DefaultLang is served when a request names an unsupported language.
const DefaultLang = LangEN

// langAliases collapses legacy request codes onto the cache entry that
// serves them. The upstream publishes no French edition.
var langAliases = map[Lang]Lang{
	LangFR: LangEN,
}

var supportedLangs = map[Lang]bool{
	LangDE: true,
	LangEN: true,
	LangIT: true,
	LangHR: true,
	LangFR: true,
}

// NormalizeLang maps a requested language code to the code whose cache
// entry answers it. Unknown codes fall back to DefaultLang.
func NormalizeLang(raw string) Lang {
	l := Lang(strings.ToLower(strings.TrimSpace(raw)))
	if !supportedLangs[l] {
		return DefaultLang
	}
	if target, ok := langAliases[l]; ok {
		return target
	}
	return l
}

// ParseLangs parses a comma-separated list of cacheable language codes,
// dropping duplicates, unsupported codes and aliases.
func ParseLangs(s string) []Lang {
	var out []Lang
	seen := make(map[Lang]bool)
	for _, part := range strings.Split(s, ",") {
		l := Lang(strings.ToLower(strings.TrimSpace(part)))
		if !supportedLangs[l] || seen[l] {
			continue
		}
		if _, alias := langAliases[l]; alias {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
