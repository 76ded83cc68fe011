package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/testutil"
	"github.com/starford/raido/internal/vaultservice"
)

func testRouter(t *testing.T, authEnabled bool, token string) http.Handler {
	t.Helper()
	vaultDir, store := testutil.TestVault(t)
	db := testutil.TestDB(t)

	testutil.WriteNote(t, vaultDir, "Alice.md", "# Alice\nHello world\n")
	testutil.WriteNote(t, vaultDir, "Index.md", "# Index\nsee [[Alice]]\n\n## People\n- [[Alice]]\n")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := index.Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}

	svc := vaultservice.NewService(store, db, vaultDir)
	return NewRouter(svc, authEnabled, token, nil)
}

func get(t *testing.T, h http.Handler, url string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestListNotes(t *testing.T) {
	h := testRouter(t, false, "")
	rec := get(t, h, "/notes?sort=path")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp NoteListResponse
	decode(t, rec, &resp)
	if resp.Total != 2 || len(resp.Notes) != 2 {
		t.Errorf("total = %d, notes = %v", resp.Total, resp.Notes)
	}
	if resp.Notes[0].Path != "Alice.md" || resp.Notes[0].Title != "Alice" {
		t.Errorf("first = %+v", resp.Notes[0])
	}
}

func TestGetNote(t *testing.T) {
	h := testRouter(t, false, "")
	rec := get(t, h, "/notes/Alice.md")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var detail vaultservice.NoteDetail
	decode(t, rec, &detail)
	if detail.Title != "Alice" || !strings.Contains(detail.Content, "Hello world") {
		t.Errorf("detail = %+v", detail)
	}
	if detail.WordCount != 3 {
		t.Errorf("word count = %d, want 3", detail.WordCount)
	}
	if len(detail.Backlinks) != 1 || detail.Backlinks[0] != "Index.md" {
		t.Errorf("backlinks = %v", detail.Backlinks)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	h := testRouter(t, false, "")
	rec := get(t, h, "/notes/missing.md")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	h := testRouter(t, false, "")

	rec := get(t, h, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", rec.Code)
	}

	rec = get(t, h, "/search?q=Hello")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp SearchResponse
	decode(t, rec, &resp)
	if len(resp.Results) != 1 || resp.Results[0].Path != "Alice.md" {
		t.Errorf("results = %v", resp.Results)
	}
}

func TestBacklinks(t *testing.T) {
	h := testRouter(t, false, "")

	rec := get(t, h, "/backlinks")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing target: status = %d, want 400", rec.Code)
	}

	rec = get(t, h, "/backlinks?target=Alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp BacklinksResponse
	decode(t, rec, &resp)
	if len(resp.Backlinks) != 1 || resp.Backlinks[0] != "Index.md" {
		t.Errorf("backlinks = %v", resp.Backlinks)
	}
}

func TestGraph(t *testing.T) {
	h := testRouter(t, false, "")
	rec := get(t, h, "/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Nodes []index.GraphNode `json:"nodes"`
		Links []index.GraphLink `json:"links"`
	}
	decode(t, rec, &resp)
	if len(resp.Nodes) != 2 {
		t.Errorf("nodes = %v", resp.Nodes)
	}
	if len(resp.Links) != 1 || resp.Links[0].Target != "Alice" {
		t.Errorf("links = %v", resp.Links)
	}
}

func TestCompile(t *testing.T) {
	h := testRouter(t, false, "")

	rec := get(t, h, "/compile?target=Index&mode=final")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var result models.CompileResult
	decode(t, rec, &result)
	if result.Output != "# Alice\nHello world\n" {
		t.Errorf("output = %q", result.Output)
	}
	if result.WordCount != 3 {
		t.Errorf("word count = %d, want 3", result.WordCount)
	}
}

func TestCompile_Errors(t *testing.T) {
	h := testRouter(t, false, "")

	if rec := get(t, h, "/compile"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing target: status = %d, want 400", rec.Code)
	}
	if rec := get(t, h, "/compile?target=nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown target: status = %d, want 404", rec.Code)
	}
}

func TestAuth(t *testing.T) {
	h := testRouter(t, true, "secret")

	if rec := get(t, h, "/notes"); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := get(t, h, "/notes", "Authorization", "Bearer wrong"); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}
	if rec := get(t, h, "/notes", "Authorization", "Bearer secret"); rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}
