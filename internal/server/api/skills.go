package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

type createSkillRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	CreditsPerHour int64  `json:"credits_per_hour"`
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req createSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	skill, err := s.skills.Create(r.Context(), services.CreateSkillInput{
		OwnerID:        userIDFromContext(r.Context()),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		CreditsPerHour: req.CreditsPerHour,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSkillResponse(skill))
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := s.skills.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSkillResponse(skill))
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.skills.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"skills": toSkillResponses(skills),
	})
}

func (s *Server) handleListOwnSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.skills.ListByOwner(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"skills": toSkillResponses(skills),
	})
}

type setSkillActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleSetSkillActive(w http.ResponseWriter, r *http.Request) {
	var req setSkillActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.skills.SetActive(r.Context(), id, userIDFromContext(r.Context()), req.Active); err != nil {
		writeServiceError(w, err)
		return
	}

	skill, err := s.skills.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSkillResponse(skill))
}
