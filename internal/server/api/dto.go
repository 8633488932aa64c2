package api

import (
	"time"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

type profileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Balance       int64     `json:"balance"`
	SkillsTaught  int       `json:"skills_taught"`
	SkillsLearned int       `json:"skills_learned"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	return profileResponse{
		ID:            p.ID,
		Email:         p.Email,
		FullName:      p.FullName,
		Balance:       p.Balance,
		SkillsTaught:  p.SkillsTaught,
		SkillsLearned: p.SkillsLearned,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		CreatedAt:     p.CreatedAt,
	}
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func toTokenPairResponse(p *services.TokenPair) tokenPairResponse {
	return tokenPairResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

type skillResponse struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	CreditsPerHour int64     `json:"credits_per_hour"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toSkillResponse(s *models.Skill) skillResponse {
	return skillResponse{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Title:          s.Title,
		Description:    s.Description,
		Category:       s.Category,
		CreditsPerHour: s.CreditsPerHour,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
	}
}

func toSkillResponses(skills []*models.Skill) []skillResponse {
	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return out
}

type swapResponse struct {
	ID            string     `json:"id"`
	SkillID       string     `json:"skill_id"`
	TeacherID     string     `json:"teacher_id"`
	LearnerID     string     `json:"learner_id"`
	Status        string     `json:"status"`
	DurationHours int        `json:"duration_hours"`
	TotalCredits  int64      `json:"total_credits"`
	Message       string     `json:"message,omitempty"`
	MeetingType   string     `json:"meeting_type,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toSwapResponse(s *models.Swap) swapResponse {
	return swapResponse{
		ID:            s.ID,
		SkillID:       s.SkillID,
		TeacherID:     s.TeacherID,
		LearnerID:     s.LearnerID,
		Status:        string(s.Status),
		DurationHours: s.DurationHours,
		TotalCredits:  s.TotalCredits,
		Message:       s.Message,
		MeetingType:   s.MeetingType,
		ScheduledAt:   s.ScheduledAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toSwapResponses(swaps []*models.Swap) []swapResponse {
	out := make([]swapResponse, 0, len(swaps))
	for _, s := range swaps {
		out = append(out, toSwapResponse(s))
	}
	return out
}

type transactionResponse struct {
	ID          string    `json:"id"`
	FromUserID  string    `json:"from_user_id,omitempty"`
	ToUserID    string    `json:"to_user_id"`
	SwapID      string    `json:"swap_id,omitempty"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResponses(entries []*models.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, transactionResponse{
			ID:          e.ID,
			FromUserID:  e.FromUserID,
			ToUserID:    e.ToUserID,
			SwapID:      e.SwapID,
			Amount:      e.Amount,
			Kind:        string(e.Kind),
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
