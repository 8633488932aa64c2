package models

import "time"

// Skill is an offering owned by exactly one profile. CreditsPerHour is the
// positive per-hour price used to derive a swap's total_credits.
type Skill struct {
	ID             string
	OwnerID        string
	Title          string
	Description    string
	Category       string
	CreditsPerHour int64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
