package extract

import (
	"regexp"
	"strings"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// markerFallback slices the page text at known topic markers. Topics are
// searched in canonical order; each runs from the end of its leftmost marker
// to the nearest marker of any later topic. Topics without a marker are
// omitted.
func markerFallback(bodyText string, lang domain.Lang) []domain.RawSection {
	table := markersFor(lang)

	var sections []domain.RawSection
	for i, slot := range domain.Slots {
		re := markerPattern(table[slot])
		if re == nil {
			continue
		}
		loc := re.FindStringIndex(bodyText)
		if loc == nil {
			continue
		}

		end := len(bodyText)
		var later []string
		for _, next := range domain.Slots[i+1:] {
			later = append(later, table[next]...)
		}
		if nextRe := markerPattern(later); nextRe != nil {
			if next := nextRe.FindStringIndex(bodyText[loc[1]:]); next != nil {
				end = loc[1] + next[0]
			}
		}

		sections = append(sections, domain.RawSection{
			Label: bodyText[loc[0]:loc[1]],
			Text:  normalizeText(strings.TrimLeft(bodyText[loc[1]:end], ":.-– ")),
		})
	}
	return sections
}

// markerPattern compiles a case-insensitive alternation of literal markers.
// Alternatives keep their table order, so longer phrasings listed first win
// at the same position.
func markerPattern(list []string) *regexp.Regexp {
	if len(list) == 0 {
		return nil
	}
	quoted := make([]string, len(list))
	for i, m := range list {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
