package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/auth"
	"github.com/jask/communitydash/internal/database"
	"github.com/jask/communitydash/internal/database/repository"
	"github.com/jask/communitydash/internal/service"
)

type testEnv struct {
	srv    *httptest.Server
	db     *sql.DB
	token  string
	token2 string
	issuer *auth.Issuer
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "api.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	accounts := repository.NewAccountRepo(db)
	_, err = accounts.Ensure(ctx, "0x0", database.Now())
	require.NoError(t, err)
	_, err = accounts.Ensure(ctx, "0x1", database.Now())
	require.NoError(t, err)

	issuer := auth.NewIssuer("test-secret", "communityd", time.Hour)
	tok, err := issuer.Issue("0x0")
	require.NoError(t, err)
	tok2, err := issuer.Issue("0x1")
	require.NoError(t, err)

	s := &Server{
		Communities: &service.CommunityService{Communities: repository.NewCommunityRepo(db), Limit: 5},
		Accounts:    accounts,
		Tokens:      issuer,
		Log:         zap.NewNop(),
	}
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return testEnv{srv: srv, db: db, token: tok, token2: tok2, issuer: issuer}
}

func (e testEnv) do(t *testing.T, method, path, token, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func detailOf(t *testing.T, data []byte) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body.Detail
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Ok", string(body))
}

func TestCreateCommunityWithBadToken(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, http.MethodPost, "/account/communities", "bad_token", `{"name":"test","description":"test"}`)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Unauthorized", detailOf(t, body))

	status, _ = e.do(t, http.MethodGet, "/account/communities", "", "")
	require.Equal(t, http.StatusUnauthorized, status)

	unknown, err := e.issuer.Issue("0xnobody")
	require.NoError(t, err)
	status, _ = e.do(t, http.MethodGet, "/account/communities", unknown, "")
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateAndListCommunities(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"test","description":"test","use_case":"sybill protection"}`)
	require.Equal(t, http.StatusOK, status)
	var created communityJSON
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "test", created.Name)

	var useCase string
	require.NoError(t, e.db.QueryRow(`SELECT use_case FROM communities WHERE id = ?`, created.ID).Scan(&useCase))
	require.Equal(t, "sybill protection", useCase)

	_, _ = e.do(t, http.MethodPost, "/account/communities", e.token2, `{"name":"Community for user 2","description":"test"}`)

	status, body = e.do(t, http.MethodGet, "/account/communities", e.token, "")
	require.Equal(t, http.StatusOK, status)
	var list []communityJSON
	require.NoError(t, json.Unmarshal(body, &list))
	require.Equal(t, []communityJSON{created}, list)
}

func TestListEmptyIsArray(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, http.MethodGet, "/account/communities", e.token, "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, string(body))
}

func TestCreateCommunityValidation(t *testing.T) {
	e := newTestEnv(t)
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"no name", `{"description":"test"}`, http.StatusUnprocessableEntity},
		{"no description", `{"name":"test"}`, http.StatusUnprocessableEntity},
		{"no body", ``, http.StatusUnprocessableEntity},
		{"empty name", `{"name":"","description":"test"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		status, _ := e.do(t, http.MethodPost, "/account/communities", e.token, tc.body)
		require.Equal(t, tc.status, status, tc.name)
	}

	status, _ := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"test","description":"first community"}`)
	require.Equal(t, http.StatusOK, status)
	status, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"test","description":"another community"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "A community with this name already exists", detailOf(t, body))
}

func TestCreateMaxCommunities(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 5; i++ {
		status, _ := e.do(t, http.MethodPost, "/account/communities", e.token, fmt.Sprintf(`{"name":"test %d","description":"test"}`, i))
		require.Equal(t, http.StatusOK, status)
	}
	status, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"test","description":"test"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "You have already created 5 Communities", detailOf(t, body))

	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM communities`).Scan(&n))
	require.Equal(t, 5, n)
}

func TestUpdateCommunity(t *testing.T) {
	e := newTestEnv(t)
	_, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"Community 1","description":"test"}`)
	var created communityJSON
	require.NoError(t, json.Unmarshal(body, &created))

	status, body := e.do(t, http.MethodPut, "/account/communities/"+created.ID, e.token, `{"name":"New Name","description":"New Description"}`)
	require.Equal(t, http.StatusOK, status)
	var updated communityJSON
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, communityJSON{ID: created.ID, Name: "New Name", Description: "New Description"}, updated)

	status, body = e.do(t, http.MethodPut, "/account/communities/"+created.ID, e.token, `{"name":"New Name","description":"Other"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "You've entered the same community name", detailOf(t, body))

	status, _ = e.do(t, http.MethodPut, "/account/communities/"+created.ID, e.token2, `{"name":"Stolen","description":"x"}`)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = e.do(t, http.MethodPut, "/account/communities/"+created.ID, e.token, `{"name":"","description":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestDeleteCommunity(t *testing.T) {
	e := newTestEnv(t)
	_, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"Community1","description":"test"}`)
	var mine communityJSON
	require.NoError(t, json.Unmarshal(body, &mine))
	_, body = e.do(t, http.MethodPost, "/account/communities", e.token2, `{"name":"Community2","description":"test"}`)
	var theirs communityJSON
	require.NoError(t, json.Unmarshal(body, &theirs))

	status, _ := e.do(t, http.MethodDelete, "/account/communities/"+theirs.ID, e.token, "")
	require.Equal(t, http.StatusNotFound, status)

	status, body = e.do(t, http.MethodDelete, "/account/communities/"+mine.ID, e.token, "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"ok":true}`, string(body))

	var name string
	require.NoError(t, e.db.QueryRow(`SELECT name FROM communities`).Scan(&name))
	require.Equal(t, "Community2", name)
}

func TestScorers(t *testing.T) {
	e := newTestEnv(t)
	_, body := e.do(t, http.MethodPost, "/account/communities", e.token, `{"name":"scored","description":"test"}`)
	var c communityJSON
	require.NoError(t, json.Unmarshal(body, &c))

	status, body := e.do(t, http.MethodGet, "/account/communities/"+c.ID+"/scorers", e.token, "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"ok":true,"current_scorer":"WEIGHTED","scorers":[{"id":"WEIGHTED","label":"Weighted"},{"id":"WEIGHTED_BINARY","label":"Weighted Binary"}]}`, string(body))

	status, body = e.do(t, http.MethodPut, "/account/communities/"+c.ID+"/scorers", e.token, `{"scorer_type":"NOPE"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "The scorer type does not exist", detailOf(t, body))

	status, _ = e.do(t, http.MethodPut, "/account/communities/"+c.ID+"/scorers", e.token, `{"scorer_type":"WEIGHTED_BINARY"}`)
	require.Equal(t, http.StatusOK, status)

	_, body = e.do(t, http.MethodGet, "/account/communities/"+c.ID+"/scorers", e.token, "")
	var resp scorersResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, "WEIGHTED_BINARY", resp.CurrentScorer)
}
