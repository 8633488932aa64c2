package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.profiles.ListTransactions(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": toTransactionResponses(entries),
	})
}

func (s *Server) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.profiles.GetAvatarUploadURL(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"key":        key,
		"upload_url": url,
	})
}

func (s *Server) handleAvatarURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.profiles.GetAvatarURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
