package domain

import "context"

// RawSection is one heading- or marker-delimited chunk of bulletin text,
// in document order.
type RawSection struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// CanonicalBlock is one of the four fixed bulletin topics. Both fields are
// always serialized, empty when the topic could not be matched.
type CanonicalBlock struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Blocks holds the four canonical topics of a bulletin.
type Blocks struct {
	Warning     CanonicalBlock `json:"warning"`
	Synopsis    CanonicalBlock `json:"synopsis"`
	Forecast12h CanonicalBlock `json:"forecast_12h"`
	Outlook12h  CanonicalBlock `json:"outlook_12h"`
}

// Slot identifies a canonical block.
type Slot int

const (
	SlotWarning Slot = iota
	SlotSynopsis
	SlotForecast12h
	SlotOutlook12h
)

// Slots lists the canonical blocks in canonical order.
var Slots = [...]Slot{SlotWarning, SlotSynopsis, SlotForecast12h, SlotOutlook12h}

func (s Slot) String() string {
	switch s {
	case SlotWarning:
		return "warning"
	case SlotSynopsis:
		return "synopsis"
	case SlotForecast12h:
		return "forecast_12h"
	case SlotOutlook12h:
		return "outlook_12h"
	default:
		return "unknown"
	}
}

// Block returns a pointer to the block stored in slot s.
func (b *Blocks) Block(s Slot) *CanonicalBlock {
	switch s {
	case SlotWarning:
		return &b.Warning
	case SlotSynopsis:
		return &b.Synopsis
	case SlotForecast12h:
		return &b.Forecast12h
	case SlotOutlook12h:
		return &b.Outlook12h
	default:
		return nil
	}
}

// BulletinPayload is the normalized bulletin persisted once per language.
// The JSON shape is the cache object format and must stay stable.
type BulletinPayload struct {
	SourceURL string  `json:"sourceUrl"`
	Title     string  `json:"title"`
	IssuedAt  *string `json:"issuedAt"`
	FetchedAt string  `json:"fetchedAt"`
	Blocks    Blocks  `json:"blocks"`
}

// BulletinFetcher retrieves the raw bulletin page for a language.
type BulletinFetcher interface {
	FetchBulletinHTML(ctx context.Context, lang Lang) (string, error)
	// SourceURL reports the page address requested for lang.
	SourceURL(lang Lang) string
}
