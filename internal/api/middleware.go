package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/database/repository"
)

type ctxKey int

const accountKey ctxKey = iota

func accountFrom(ctx context.Context) repository.Account {
	a, _ := ctx.Value(accountKey).(repository.Account)
	return a
}

// authenticate resolves the bearer token to an existing account or answers 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeDetail(w, http.StatusUnauthorized, detailUnauthorized)
			return
		}
		address, err := s.Tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			s.Log.Debug("rejected token", zap.Error(err))
			writeDetail(w, http.StatusUnauthorized, detailUnauthorized)
			return
		}
		acct, err := s.Accounts.ByAddress(r.Context(), address)
		if err != nil {
			s.Log.Error("account lookup", zap.String("address", address), zap.Error(err))
			writeDetail(w, http.StatusInternalServerError, detailInternal)
			return
		}
		if acct == nil {
			writeDetail(w, http.StatusUnauthorized, detailUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, *acct)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
