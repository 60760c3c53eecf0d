// Package api serves the community store over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/database/repository"
	"github.com/jask/communitydash/internal/service"
)

// TokenVerifier resolves a bearer token to an account address.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// AccountLookup finds accounts by address.
type AccountLookup interface {
	ByAddress(ctx context.Context, address string) (*repository.Account, error)
}

// Server holds handler dependencies.
type Server struct {
	Communities *service.CommunityService
	Accounts    AccountLookup
	Tokens      TokenVerifier
	Log         *zap.Logger
}

// Routes builds the router. Community routes live under /account like the rest of the account API.
func (s *Server) Routes() http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", Health)
	r.Route("/account", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/communities", s.listCommunities)
		r.Post("/communities", s.createCommunity)
		r.Put("/communities/{communityID}", s.updateCommunity)
		r.Delete("/communities/{communityID}", s.deleteCommunity)
		r.Get("/communities/{communityID}/scorers", s.getScorers)
		r.Put("/communities/{communityID}/scorers", s.setScorer)
	})
	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ok"))
}
