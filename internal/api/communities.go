package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jask/communitydash/internal/service"
)

// decodePayload reports false (after answering 422) when the body is absent or is not a
// community object.
func decodePayload(w http.ResponseWriter, r *http.Request) (service.CommunityInput, bool) {
	var p communityPayload
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&p)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailNoBody)
		return service.CommunityInput{}, false
	}
	if p.Name == nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailNoName)
		return service.CommunityInput{}, false
	}
	if p.Description == nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailNoDescription)
		return service.CommunityInput{}, false
	}
	return service.CommunityInput{Name: *p.Name, Description: *p.Description, UseCase: p.UseCase}, true
}

func (s *Server) listCommunities(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	list, err := s.Communities.List(r.Context(), acct.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]communityJSON, 0, len(list))
	for _, c := range list {
		out = append(out, toCommunityJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCommunity(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePayload(w, r)
	if !ok {
		return
	}
	c, err := s.Communities.Create(r.Context(), accountFrom(r.Context()).ID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommunityJSON(c))
}

func (s *Server) updateCommunity(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePayload(w, r)
	if !ok {
		return
	}
	c, err := s.Communities.Update(r.Context(), accountFrom(r.Context()).ID, chi.URLParam(r, "communityID"), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommunityJSON(c))
}

func (s *Server) deleteCommunity(w http.ResponseWriter, r *http.Request) {
	if err := s.Communities.Delete(r.Context(), accountFrom(r.Context()).ID, chi.URLParam(r, "communityID")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) getScorers(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Communities.Scorers(r.Context(), accountFrom(r.Context()).ID, chi.URLParam(r, "communityID"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := scorersResponse{OK: true, CurrentScorer: sum.Current, Scorers: make([]scorerJSON, 0, len(sum.Options))}
	for _, o := range sum.Options {
		resp.Scorers = append(resp.Scorers, scorerJSON{ID: o.ID, Label: o.Label})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) setScorer(w http.ResponseWriter, r *http.Request) {
	var p scorerPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailUnknownScorer)
		return
	}
	if err := s.Communities.SetScorer(r.Context(), accountFrom(r.Context()).ID, chi.URLParam(r, "communityID"), p.ScorerType); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
