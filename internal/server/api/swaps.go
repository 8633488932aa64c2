package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

type createSwapRequest struct {
	SkillID       string     `json:"skill_id"`
	DurationHours int        `json:"duration_hours"`
	Message       string     `json:"message"`
	MeetingType   string     `json:"meeting_type"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	TeacherID     string     `json:"teacher_id"`
	TotalCredits  int64      `json:"total_credits"`
}

func (s *Server) handleCreateSwap(w http.ResponseWriter, r *http.Request) {
	var req createSwapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	swap, err := s.swaps.Create(r.Context(), services.CreateSwapInput{
		SkillID:       req.SkillID,
		LearnerID:     userIDFromContext(r.Context()),
		DurationHours: req.DurationHours,
		Message:       req.Message,
		MeetingType:   req.MeetingType,
		ScheduledAt:   req.ScheduledAt,
		TeacherID:     req.TeacherID,
		TotalCredits:  req.TotalCredits,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSwapResponse(swap))
}

func (s *Server) handleGetSwap(w http.ResponseWriter, r *http.Request) {
	swap, err := s.swaps.Get(r.Context(), chi.URLParam(r, "id"), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwapResponse(swap))
}

func (s *Server) handleListSwaps(w http.ResponseWriter, r *http.Request) {
	swaps, err := s.swaps.ListByUser(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"swaps": toSwapResponses(swaps),
	})
}

func (s *Server) handleSwapAction(w http.ResponseWriter, r *http.Request) {
	action := models.SwapAction(chi.URLParam(r, "action"))
	switch action {
	case models.ActionAccept, models.ActionDecline, models.ActionBegin,
		models.ActionCancel, models.ActionComplete:
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	swap, err := s.swaps.Transition(r.Context(), chi.URLParam(r, "id"),
		userIDFromContext(r.Context()), action)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwapResponse(swap))
}
