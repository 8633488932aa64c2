package api

import (
	"net/http"

	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	ReferrerID string `json:"referrer_id"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, pair, err := s.users.Register(r.Context(), services.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		ReferrerID: req.ReferrerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"profile": toProfileResponse(profile),
		"tokens":  toTokenPairResponse(pair),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeLoginError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": toProfileResponse(profile),
		"tokens":  toTokenPairResponse(pair),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeLoginError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

// provisionExternalRequest carries the assertion the external identity
// provider issued after authenticating the user. The profile id is taken
// from the verified assertion, never from the request.
type provisionExternalRequest struct {
	IdentityToken string `json:"identity_token"`
	ReferrerID    string `json:"referrer_id"`
}

func (s *Server) handleProvisionExternal(w http.ResponseWriter, r *http.Request) {
	var req provisionExternalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, pair, err := s.users.ProvisionExternal(r.Context(), req.IdentityToken, req.ReferrerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": toProfileResponse(profile),
		"tokens":  toTokenPairResponse(pair),
	})
}
