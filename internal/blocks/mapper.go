// Package blocks classifies extracted bulletin sections into the four
// canonical topics.
package blocks

import (
	"strings"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// slotKeywords holds, per canonical slot, label vocabulary from all
// supported languages (en, hr, de, it, fr).
var slotKeywords = map[domain.Slot][]string{
	domain.SlotWarning: {
		"warning", "upozorenje", "warnung", "avviso", "allerta", "avvertimento",
		"avertissement", "alerte",
	},
	domain.SlotSynopsis: {
		"synopsis", "situation", "sinoptička", "situacija", "stanje",
		"wetterlage", "allgemeine lage", "situazione", "sinottica",
	},
	domain.SlotForecast12h: {
		"forecast", "prognoza", "vorhersage", "previsione", "previsioni",
		"prévision", "prevision",
	},
	domain.SlotOutlook12h: {
		"outlook", "izgledi", "aussichten", "tendenza", "prospettive",
		"tendance", "perspectives",
	},
}

// needsTwelve marks slots whose labels must mention "12" to separate the
// 12-hour forecast from the following outlook and from the other topics.
var needsTwelve = map[domain.Slot]bool{
	domain.SlotForecast12h: true,
	domain.SlotOutlook12h:  true,
}

// Map assigns sections to canonical blocks. Every slot is always present;
// unmatched slots are empty.
func Map(sections []domain.RawSection) domain.Blocks {
	var out domain.Blocks
	claimed := make([]bool, len(sections))
	filled := make(map[domain.Slot]bool, len(domain.Slots))

	// Keyword classification, slots in canonical order.
	for _, slot := range domain.Slots {
		for i, s := range sections {
			if claimed[i] || !matchesSlot(slot, s.Label) {
				continue
			}
			*out.Block(slot) = domain.CanonicalBlock(s)
			claimed[i] = true
			filled[slot] = true
			break
		}
	}

	// Positional fallback for unlabelled or unrecognised headings: the first
	// four sections fill whichever slots are still empty, by index.
	if len(filled) < 2 && len(sections) >= 2 {
		for i, slot := range domain.Slots {
			if i >= len(sections) {
				break
			}
			if filled[slot] {
				continue
			}
			*out.Block(slot) = domain.CanonicalBlock(sections[i])
			filled[slot] = true
		}
	}

	return out
}

func matchesSlot(slot domain.Slot, label string) bool {
	label = strings.ToLower(label)
	if needsTwelve[slot] && !strings.Contains(label, "12") {
		return false
	}
	for _, kw := range slotKeywords[slot] {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}
