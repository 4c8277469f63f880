package domain

import (
	"context"
	"time"
)

// LangResult is the outcome of refreshing one language.
type LangResult struct {
	Lang     Lang    `json:"lang"`
	OK       bool    `json:"ok"`
	IssuedAt *string `json:"issuedAt,omitempty"`
	Title    string  `json:"title,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// RefreshEvent announces one language outcome of a refresh run.
type RefreshEvent struct {
	RunID       string    `json:"runId"`
	Lang        Lang      `json:"lang"`
	OK          bool      `json:"ok"`
	Title       string    `json:"title,omitempty"`
	IssuedAt    *string   `json:"issuedAt,omitempty"`
	ObjectURL   string    `json:"objectUrl,omitempty"`
	Error       string    `json:"error,omitempty"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// RefreshPublisher delivers refresh events to downstream consumers.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, events []RefreshEvent) error
}
