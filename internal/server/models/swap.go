package models

import "time"

// SwapStatus enumerates the lifecycle states of a swap.
type SwapStatus string

const (
	SwapPending    SwapStatus = "pending"
	SwapAccepted   SwapStatus = "accepted"
	SwapInProgress SwapStatus = "in_progress"
	SwapCompleted  SwapStatus = "completed"
	SwapDeclined   SwapStatus = "declined"
	SwapCancelled  SwapStatus = "cancelled"
)

// SwapAction is a caller-requested transition on a swap.
type SwapAction string

const (
	ActionAccept   SwapAction = "accept"
	ActionDecline  SwapAction = "decline"
	ActionBegin    SwapAction = "begin"
	ActionCancel   SwapAction = "cancel"
	ActionComplete SwapAction = "complete"
)

// Swap is a proposed or executed teaching exchange between a teacher and a
// learner. TeacherID and LearnerID are always distinct; TotalCredits is
// derived from the skill's hourly rate and DurationHours at creation time.
// Swaps are never deleted: terminal states are retained as history.
type Swap struct {
	ID            string
	SkillID       string
	TeacherID     string
	LearnerID     string
	Status        SwapStatus
	DurationHours int
	TotalCredits  int64
	Message       string
	MeetingType   string
	ScheduledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Participant reports whether userID is the swap's teacher or learner.
func (s *Swap) Participant(userID string) bool {
	return userID == s.TeacherID || userID == s.LearnerID
}
