package domain

import "time"

// Article is the extraction result for a single page. Constructed once per
// request, never mutated, never persisted.
type Article struct {
	Title       string
	PublishedAt time.Time
	Body        string
}

// Image is a generated illustration payload.
type Image struct {
	Bytes    []byte
	MimeType string
}

// Action enumerates the supported text transformations.
type Action string

const (
	ActionSummary    Action = "summary"
	ActionTheses     Action = "theses"
	ActionSocialPost Action = "social_post"
)

// Valid reports whether the action is one of the known transformations.
func (a Action) Valid() bool {
	switch a {
	case ActionSummary, ActionTheses, ActionSocialPost:
		return true
	}
	return false
}
