package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/api"
	"github.com/jask/communitydash/internal/auth"
	"github.com/jask/communitydash/internal/database"
	"github.com/jask/communitydash/internal/database/repository"
	"github.com/jask/communitydash/internal/service"
)

// newStore runs the real API over a temp database and returns a client for 0x0.
func newStore(t *testing.T) *Client {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "client.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	accounts := repository.NewAccountRepo(db)
	_, err = accounts.Ensure(context.Background(), "0x0", database.Now())
	require.NoError(t, err)
	issuer := auth.NewIssuer("secret", "communityd", time.Hour)
	tok, err := issuer.Issue("0x0")
	require.NoError(t, err)

	s := &api.Server{
		Communities: &service.CommunityService{Communities: repository.NewCommunityRepo(db), Limit: 5},
		Accounts:    accounts,
		Tokens:      issuer,
		Log:         zap.NewNop(),
	}
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/account/", WithToken(tok), WithTimeout(5*time.Second))
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newStore(t)

	list, err := c.GetCommunities(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	created, err := c.CreateCommunity(ctx, CommunityInput{Name: "alpha", Description: "first"})
	require.NoError(t, err)
	require.Equal(t, "alpha", created.Name)

	updated, err := c.UpdateCommunity(ctx, created.ID, CommunityInput{Name: "beta", Description: "second"})
	require.NoError(t, err)
	require.Equal(t, Community{ID: created.ID, Name: "beta", Description: "second"}, updated)

	scorers, err := c.GetScorers(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "WEIGHTED", scorers.Current)
	require.Len(t, scorers.Options, 2)
	require.NoError(t, c.SetScorer(ctx, created.ID, "WEIGHTED_BINARY"))

	list, err = c.GetCommunities(ctx)
	require.NoError(t, err)
	require.Equal(t, []Community{updated}, list)

	require.NoError(t, c.DeleteCommunity(ctx, created.ID))
	list, err = c.GetCommunities(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	ctx := context.Background()
	c := newStore(t)

	_, err := c.CreateCommunity(ctx, CommunityInput{Name: "", Description: "x"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "A community must have a name", apiErr.Detail)

	err = c.DeleteCommunity(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	anon := New(c.baseURL)
	_, err = anon.GetCommunities(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClientSendsPayloadAndToken(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/account/communities", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(Community{ID: "1", Name: "n", Description: "d"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/account", WithToken(" tok "), WithHTTPClient(srv.Client()))
	got, err := c.CreateCommunity(context.Background(), CommunityInput{Name: "n", Description: "d"})
	require.NoError(t, err)
	require.Equal(t, "1", got.ID)
	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, map[string]any{"name": "n", "description": "d"}, gotBody)
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL).GetCommunities(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Empty(t, apiErr.Detail)
}

func TestClientIgnoresNilHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithHTTPClient(nil), WithTimeout(2*time.Second))
	require.NotNil(t, c.http)
	require.Equal(t, 2*time.Second, c.http.Timeout)
	list, err := c.GetCommunities(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
