package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldex/tooldex/internal/analytics"
	"github.com/tooldex/tooldex/internal/catalog"
	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/compare"
	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/routes"
	"github.com/tooldex/tooldex/internal/identity"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/prefs"
	"github.com/tooldex/tooldex/internal/store/local"
	"github.com/tooldex/tooldex/internal/store/rest"
)

// newTestServer wires the full route table over an in-memory stack, the
// same shape the app assembles in production.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mem := kv.NewMemory()
	adapter := local.New(mem)
	idx := catalog.NewIndex()
	idx.Replace([]*domain.Tool{
		{
			ID: 1, Name: "Midjourney", Category: "Image Generation",
			Pricing: "Paid plans from $10/mo", Description: "Text to image",
			DateAdded: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Popularity: 97,
		},
		{
			ID: 2, Name: "ChatGPT", Category: "Chatbots",
			Pricing: "Free / Paid", Description: "Conversational assistant",
			DateAdded: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Popularity: 99,
		},
	})

	d := deps.Deps{
		Logger:      logger.NewNop(),
		StartTime:   time.Now(),
		Backend:     "local",
		Catalog:     idx,
		Store:       adapter,
		Auth:        identity.NewStoreAuth(adapter, mem),
		KV:          mem,
		Prefs:       prefs.New(mem),
		Reviews:     collections.NewReviews(adapter),
		Submissions: collections.NewSubmissions(adapter),
		Chat:        collections.NewChat(mem),
		Favorites:   compare.NewFavorites(mem),
		Comparison:  compare.NewComparison(mem),
		Analytics:   analytics.NewRecorder(mem, logger.NewNop()),
		JWTSecret:   []byte("integration-secret"),
		TokenTTL:    time.Hour,

		ReloadTrigger: make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRestAdapterRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	adapter := rest.New(srv.URL, nil)
	ctx := context.Background()

	// Create through the adapter; the server validates and stamps.
	res, err := adapter.Save(ctx, domain.CollectionReviews, map[string]any{
		"toolId":  "1",
		"rating":  5,
		"name":    "Ada",
		"comment": "Excellent results.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)

	recs, err := adapter.Get(ctx, domain.CollectionReviews, map[string]string{"toolId": "1"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, res.ID, recs[0]["id"])

	// A single-field helpful patch routes onto the specialized endpoint.
	require.NoError(t, adapter.Update(ctx, domain.CollectionReviews, res.ID,
		map[string]any{"helpful": 1}))

	recs, err = adapter.Get(ctx, domain.CollectionReviews, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, float64(1), recs[0]["helpful"])

	require.NoError(t, adapter.Delete(ctx, domain.CollectionReviews, res.ID))
	// Deleting again is still fine.
	require.NoError(t, adapter.Delete(ctx, domain.CollectionReviews, res.ID))

	recs, err = adapter.Get(ctx, domain.CollectionReviews, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRestAdapterRejectsInvalidRecord(t *testing.T) {
	srv := newTestServer(t)
	adapter := rest.New(srv.URL, nil)

	_, err := adapter.Save(context.Background(), domain.CollectionReviews, map[string]any{
		"toolId": "1",
		"rating": 9,
	})
	assert.Error(t, err, "server-side validation must surface through the adapter")
}

func TestToolsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var page struct {
		Data       []domain.Tool `json:"data"`
		Total      int           `json:"total"`
		Page       int           `json:"page"`
		TotalPages int           `json:"totalPages"`
	}
	getJSON(t, srv.URL+"/tools?q=image", &page)

	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Midjourney", page.Data[0].Name)
	assert.Equal(t, 1, page.TotalPages)

	var cats struct {
		Categories []string `json:"categories"`
	}
	getJSON(t, srv.URL+"/categories", &cats)
	assert.Equal(t, []string{"Chatbots", "Image Generation"}, cats.Categories)

	resp, err := http.Get(srv.URL + "/tools/999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	register := map[string]string{
		"email": "ada@example.com", "password": "hunter22", "name": "Ada",
	}
	var authResp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	resp := postJSON(t, srv.URL+"/auth/register", register)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &authResp)
	require.NotEmpty(t, authResp.Token)
	assert.Equal(t, domain.RoleUser, authResp.User.Role)

	// Duplicate email conflicts.
	resp = postJSON(t, srv.URL+"/auth/register", register)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Wrong password is rejected.
	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The issued token resolves /auth/me.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// No token, no identity.
	resp2, err := http.Get(srv.URL + "/auth/me")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestComparisonCapOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var last struct {
		IDs    []string `json:"ids"`
		Member bool     `json:"member"`
	}
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		resp := postJSON(t, srv.URL+"/comparison/"+id+"/toggle", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &last)
	}

	assert.Len(t, last.IDs, 4)
	assert.False(t, last.Member, "fifth tool must not enter the tray")
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, out)
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	resp, err := http.Post(url, "application/json", &body)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
