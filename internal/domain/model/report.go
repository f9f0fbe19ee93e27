package model

import "time"

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	PassID string `json:"passId"`

	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Unchanged int `json:"unchanged"`

	// PartialFetch is set when at least one source lost pages after retry
	// exhaustion; the pass still runs but under-sync is possible.
	PartialFetch bool `json:"partialFetch"`
	// DeletesWithheld is set when the delete lane was skipped because the
	// storefront snapshot was partial.
	DeletesWithheld bool `json:"deletesWithheld"`

	// Consistency check results (observability only).
	MissingInStorefront []string `json:"missingInStorefront,omitempty"`
	ExtraInStorefront   []string `json:"extraInStorefront,omitempty"`

	Duration time.Duration `json:"durationMs"`
}
