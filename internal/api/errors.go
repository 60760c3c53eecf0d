package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/service"
)

const (
	detailUnauthorized  = "Unauthorized"
	detailInternal      = "Internal server error"
	detailNoBody        = "A community must have a name and a description"
	detailNotFound      = "Not Found"
	detailExists        = "A community with this name already exists"
	detailNoName        = "A community must have a name"
	detailNoDescription = "A community must have a description"
	detailSameName      = "You've entered the same community name"
	detailUnknownScorer = "The scorer type does not exist"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeServiceError maps service errors onto status codes and details.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	case errors.Is(err, service.ErrTooManyCommunities):
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("You have already created %d Communities", s.Communities.Limit))
	case errors.Is(err, service.ErrCommunityExists):
		writeDetail(w, http.StatusBadRequest, detailExists)
	case errors.Is(err, service.ErrSameName):
		writeDetail(w, http.StatusBadRequest, detailSameName)
	case errors.Is(err, service.ErrUnknownScorer):
		writeDetail(w, http.StatusBadRequest, detailUnknownScorer)
	case errors.Is(err, service.ErrNoName):
		writeDetail(w, http.StatusUnprocessableEntity, detailNoName)
	case errors.Is(err, service.ErrNoDescription):
		writeDetail(w, http.StatusUnprocessableEntity, detailNoDescription)
	default:
		s.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, detailInternal)
	}
}
