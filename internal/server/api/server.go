// Package api provides the HTTP server for SkillSwap: authentication, profile
// and skill management, the swap lifecycle, and the credit ledger.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/skillswap/internal/logging"
	"github.com/dmitrijs2005/skillswap/internal/server/config"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

// Server is the SkillSwap HTTP API server.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	profiles *services.ProfileService
	skills   *services.SkillService
	swaps    *services.SwapService
}

// NewServer creates a new API server.
func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, profiles *services.ProfileService,
	skills *services.SkillService, swaps *services.SwapService) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		profiles: profiles,
		skills:   skills,
		swaps:    swaps,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/external", s.handleProvisionExternal)
		})

		r.Get("/skills", s.handleListSkills)

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware([]byte(s.cfg.SecretKey)))

			r.Get("/profiles/me", s.handleGetOwnProfile)
			r.Get("/profiles/me/transactions", s.handleListTransactions)
			r.Post("/profiles/me/avatar/upload-url", s.handleAvatarUploadURL)
			r.Get("/profiles/{id}", s.handleGetProfile)
			r.Get("/profiles/{id}/avatar-url", s.handleAvatarURL)

			r.Post("/skills", s.handleCreateSkill)
			r.Get("/skills/mine", s.handleListOwnSkills)
			r.Get("/skills/{id}", s.handleGetSkill)
			r.Patch("/skills/{id}/active", s.handleSetSkillActive)

			r.Post("/swaps", s.handleCreateSwap)
			r.Get("/swaps", s.handleListSwaps)
			r.Get("/swaps/{id}", s.handleGetSwap)
			r.Post("/swaps/{id}/{action}", s.handleSwapAction)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddrHTTP,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info(ctx, "http server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
