// Package models contains the server-side domain entities persisted in
// PostgreSQL: profiles, skills, swaps, and the credit transaction ledger.
package models

import "time"

// Profile is one marketplace user: identity fields plus the credit balance and
// aggregate counters maintained by the settlement engine.
//
// Balance is never negative; it is mutated only inside provisioning,
// settlement, and admin-adjustment transactions.
type Profile struct {
	ID            string
	Email         string
	FullName      string
	PasswordHash  string
	Balance       int64
	SkillsTaught  int
	SkillsLearned int
	AverageRating float64
	TotalReviews  int
	AvatarKey     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
