package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "potholes/internal/platform/net/http"
	kit "potholes/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func mounted(enabled bool) *chi.Mux {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), enabled)
	return mux
}

func TestMount_Disabled(t *testing.T) {
	rr := httptest.NewRecorder()
	mounted(false).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", rr.Code)
	}
}

func TestMount_DocJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	mounted(true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}

	spec := kit.MustDecode[map[string]any](t, rr.Body.Bytes())
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi=%v", spec["openapi"])
	}
	if _, ok := spec["servers"]; !ok {
		t.Fatal("servers missing")
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/api/potholes", "/api/potholes/{id}", "/api/meta/ready"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("path %s missing", p)
		}
	}
	post := paths["/api/potholes"].(map[string]any)["post"].(map[string]any)
	resps := post["responses"].(map[string]any)
	for _, code := range []string{"201", "400", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("POST /api/potholes missing %s response", code)
		}
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("ErrorResponse schema missing")
	}
}

func TestMount_RedirectsBarePath(t *testing.T) {
	rr := httptest.NewRecorder()
	mounted(true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect || rr.Header().Get("Location") != "/api/docs/index.html" {
		t.Fatalf("status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestServeDocJSON_MutatorsAndBadDoc(t *testing.T) {
	saved := mutators
	t.Cleanup(func() { mutators = saved })

	Register(func(spec map[string]any) { spec["x-env"] = "test" })
	Register(nil)

	rr := httptest.NewRecorder()
	serveDocJSON()(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["x-env"] != "test" {
		t.Fatalf("mutator not applied: %v", spec["x-env"])
	}

	kit.Swap(t, &docReader, func() string { return "{" })
	rr = httptest.NewRecorder()
	serveDocJSON()(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", rr.Code)
	}
}

func TestEnsureServers_Downconverts(t *testing.T) {
	cases := []map[string]any{
		{"swagger": "2.0"},
		{"openapi": "3.1.0"},
		{},
	}
	for _, spec := range cases {
		ensureServers(spec, "/")
		if spec["openapi"] != "3.0.3" {
			t.Fatalf("openapi=%v", spec["openapi"])
		}
		if _, ok := spec["swagger"]; ok {
			t.Fatal("swagger key should be removed")
		}
	}
}
