package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/prefs"
	"github.com/tooldex/tooldex/internal/store"
	"github.com/tooldex/tooldex/internal/store/local"
)

func testDeps() deps.Deps {
	mem := kv.NewMemory()
	adapter := local.New(mem)
	return deps.Deps{
		Logger:      logger.NewNop(),
		Store:       adapter,
		KV:          mem,
		Prefs:       prefs.New(mem),
		Reviews:     collections.NewReviews(adapter),
		Submissions: collections.NewSubmissions(adapter),
	}
}

// collectionRouter mounts the collection handlers the way the route table
// does, so URL parameters resolve.
func collectionRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Post("/{collection}", CollectionCreate(d))
	r.Get("/{collection}", CollectionList(d))
	r.Put("/{collection}/{id}", CollectionUpdate(d))
	r.Delete("/{collection}/{id}", CollectionDelete(d))
	r.Put("/reviews/{id}/helpful", MarkReviewHelpful(d))
	r.Put("/submissions/{id}/status", SetSubmissionStatus(d))
	return r
}

func doReq(r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCollectionCreateReview(t *testing.T) {
	r := collectionRouter(testDeps())

	rec := doReq(r, http.MethodPost, "/reviews",
		`{"toolId":"1","rating":4,"name":"Ada","comment":"Good."}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	rec = doReq(r, http.MethodPost, "/reviews",
		`{"toolId":"1","rating":11,"name":"Ada","comment":"Good."}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range rating: status = %d, want 400", rec.Code)
	}
}

func TestCollectionRoutesRejectUnknownNames(t *testing.T) {
	r := collectionRouter(testDeps())

	// The users collection must never leak through the public CRUD tree.
	for _, path := range []string{"/users", "/widgets"} {
		if rec := doReq(r, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, rec.Code)
		}
		if rec := doReq(r, http.MethodPost, path, `{}`); rec.Code != http.StatusNotFound {
			t.Errorf("POST %s: status = %d, want 404", path, rec.Code)
		}
		if rec := doReq(r, http.MethodDelete, path+"/x", ""); rec.Code != http.StatusNotFound {
			t.Errorf("DELETE %s/x: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestMarkReviewHelpfulMissing(t *testing.T) {
	r := collectionRouter(testDeps())
	if rec := doReq(r, http.MethodPut, "/reviews/nope/helpful", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSetSubmissionStatus(t *testing.T) {
	d := testDeps()
	r := collectionRouter(d)

	created, err := d.Submissions.Create(context.Background(), collections.SubmissionInput{
		Name: "NewTool", URL: "https://newtool.example.com", Description: "d", Category: "Writing",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := doReq(r, http.MethodPut, "/submissions/"+created.ID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body %s", rec.Code, rec.Body.String())
	}

	rec = doReq(r, http.MethodPut, "/submissions/"+created.ID+"/status", `{"status":"archived"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: status = %d, want 400", rec.Code)
	}
}

func TestAdminSetUserStatus(t *testing.T) {
	d := testDeps()
	res, err := d.Store.Save(context.Background(), domain.CollectionUsers, store.Record{
		"email": "u@example.com", "status": domain.UserActive,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Put("/admin/users/{id}/status", AdminSetUserStatus(d))

	rec := doReq(r, http.MethodPut, "/admin/users/"+res.ID+"/status", `{"status":"Blocked"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body %s", rec.Code, rec.Body.String())
	}

	recs, err := d.Store.Get(context.Background(), domain.CollectionUsers, nil)
	if err != nil || len(recs) != 1 {
		t.Fatalf("Get users: %v, %d records", err, len(recs))
	}
	if recs[0]["status"] != domain.UserBlocked {
		t.Errorf("status = %v, want Blocked", recs[0]["status"])
	}

	rec = doReq(r, http.MethodPut, "/admin/users/"+res.ID+"/status", `{"status":"Suspended"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: status = %d, want 400", rec.Code)
	}
}
