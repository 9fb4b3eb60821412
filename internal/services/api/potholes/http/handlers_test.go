package http_test

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	perr "potholes/internal/platform/errors"
	phttp "potholes/internal/platform/net/http"
	kit "potholes/internal/platform/testkit"
	"potholes/internal/services/api/potholes/domain"
	pothttp "potholes/internal/services/api/potholes/http"
	"potholes/internal/services/api/potholes/repo"
	"potholes/internal/services/api/potholes/service"

	"github.com/go-chi/chi/v5"
)

type fixture struct {
	mux *chi.Mux
	mem *repo.Memory
}

// newFixture mounts the handlers over a memory repo with a clock that ticks one second per call
func newFixture(t *testing.T) fixture {
	t.Helper()
	var mu sync.Mutex
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}

	mem := repo.NewMemory()
	svc := service.New(mem, service.WithClock(clock))
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/api/potholes", func(r phttp.Router) { pothttp.Register(r, svc) })
	return fixture{mux: mux, mem: mem}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func (f fixture) create(t *testing.T, body string) domain.Pothole {
	t.Helper()
	rr := f.do(t, stdhttp.MethodPost, "/api/potholes", body)
	if rr.Code != stdhttp.StatusCreated {
		t.Fatalf("create: status=%d body=%s", rr.Code, rr.Body.String())
	}
	return kit.MustDecode[domain.Pothole](t, rr.Body.Bytes())
}

const validBody = `{"location":{"latitude":40.7128,"longitude":-74.006,"address":"5th Ave"},"videoUrl":"clip.mp4","frameTime":12.5,"confidence":0.87}`

func TestCreate_Returns201WithDefaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.create(t, validBody)

	if p.ID == "" || p.Status != domain.StatusNew || p.DetectedAt.IsZero() {
		t.Fatalf("unexpected record %+v", p)
	}
	if p.Location.Address != "5th Ave" || *p.FrameTime != 12.5 || *p.Confidence != 0.87 {
		t.Fatalf("fields not kept %+v", p)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, body string
		field      string
	}{
		{"missing latitude", `{"location":{"longitude":10},"videoUrl":"x"}`, "location.latitude"},
		{"missing longitude", `{"location":{"latitude":10},"videoUrl":"x"}`, "location.longitude"},
		{"missing location", `{"videoUrl":"x"}`, "location"},
		{"missing video", `{"location":{"latitude":1,"longitude":1}}`, "videoUrl"},
		{"latitude above range", `{"location":{"latitude":90.0001,"longitude":1},"videoUrl":"x"}`, "location.latitude"},
		{"latitude below range", `{"location":{"latitude":-91,"longitude":1},"videoUrl":"x"}`, "location.latitude"},
		{"longitude above range", `{"location":{"latitude":1,"longitude":181},"videoUrl":"x"}`, "location.longitude"},
		{"longitude below range", `{"location":{"latitude":1,"longitude":-180.5},"videoUrl":"x"}`, "location.longitude"},
		{"confidence above one", `{"location":{"latitude":1,"longitude":1},"videoUrl":"x","confidence":2}`, "confidence"},
		{"latitude as string", `{"location":{"latitude":"north","longitude":1},"videoUrl":"x"}`, "location.latitude"},
		{"metadata not object", `{"location":{"latitude":1,"longitude":1},"videoUrl":"x","metadata":[1]}`, "metadata"},
		{"malformed json", `{"location":`, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			rr := f.do(t, stdhttp.MethodPost, "/api/potholes", tc.body)
			if rr.Code != stdhttp.StatusBadRequest {
				t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
			}
			body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes())
			if body.Field != tc.field || body.Message == "" {
				t.Fatalf("error body %+v, want field %q", body, tc.field)
			}
			if f.mem.Len() != 0 {
				t.Fatal("nothing should be persisted")
			}
		})
	}
}

func TestCreate_IgnoresUnknownAndServerOwnedFields(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.create(t, `{"location":{"latitude":1,"longitude":2},"videoUrl":"x","status":"fixed","extra":true}`)
	if p.Status != domain.StatusNew {
		t.Fatalf("client cannot set status on create, got %q", p.Status)
	}
}

func TestList_NewestFirstAndStatusFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := f.create(t, validBody)
	b := f.create(t, validBody)
	c := f.create(t, validBody)

	if rr := f.do(t, stdhttp.MethodPatch, "/api/potholes/"+b.ID, `{"status":"verified"}`); rr.Code != stdhttp.StatusOK {
		t.Fatalf("patch status=%d", rr.Code)
	}

	rr := f.do(t, stdhttp.MethodGet, "/api/potholes", "")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	all := kit.MustDecode[[]domain.Pothole](t, rr.Body.Bytes())
	if len(all) != 3 || all[0].ID != c.ID || all[2].ID != a.ID {
		t.Fatalf("unexpected order %+v", all)
	}
	for i := 1; i < len(all); i++ {
		if !all[i-1].DetectedAt.After(all[i].DetectedAt) {
			t.Fatalf("detectedAt not strictly descending at %d", i)
		}
	}

	rr = f.do(t, stdhttp.MethodGet, "/api/potholes?status=verified", "")
	verified := kit.MustDecode[[]domain.Pothole](t, rr.Body.Bytes())
	if len(verified) != 1 || verified[0].ID != b.ID || verified[0].Status != domain.StatusVerified {
		t.Fatalf("status filter %+v", verified)
	}

	rr = f.do(t, stdhttp.MethodGet, "/api/potholes?limit=1&skip=1", "")
	window := kit.MustDecode[[]domain.Pothole](t, rr.Body.Bytes())
	if len(window) != 1 || window[0].ID != b.ID {
		t.Fatalf("window %+v", window)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rr := f.do(t, stdhttp.MethodGet, "/api/potholes", "")
	if rr.Code != stdhttp.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestList_BadQueryValues(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	cases := map[string]string{
		"/api/potholes?skip=-1":       "skip",
		"/api/potholes?limit=ten":     "limit",
		"/api/potholes?skip=1.5":      "skip",
		"/api/potholes?status=broken": "status",
	}
	for path, field := range cases {
		rr := f.do(t, stdhttp.MethodGet, path, "")
		if rr.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: status=%d", path, rr.Code)
		}
		if body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes()); body.Field != field {
			t.Fatalf("%s: field=%q want %q", path, body.Field, field)
		}
	}
}

func TestGet_FoundMissingMalformed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	created := f.create(t, `{"location":{"latitude":1,"longitude":2},"videoUrl":"x","metadata":{"z":1,"a":2}}`)

	rr := f.do(t, stdhttp.MethodGet, "/api/potholes/"+created.ID, "")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("get status=%d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"metadata":{"z":1,"a":2}`)

	rr = f.do(t, stdhttp.MethodGet, "/api/potholes/0123456789abcdef01234567", "")
	if rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing status=%d", rr.Code)
	}
	if body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes()); body.Message != "Pothole not found" {
		t.Fatalf("missing body %+v", body)
	}

	rr = f.do(t, stdhttp.MethodGet, "/api/potholes/not-an-id", "")
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("malformed status=%d", rr.Code)
	}
	if body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes()); body.Message != "Invalid ID" || body.Field != "id" {
		t.Fatalf("malformed body %+v", body)
	}
}

func TestCreateThenGet_RoundTrips(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	post := f.do(t, stdhttp.MethodPost, "/api/potholes", `{"location":{"latitude":1,"longitude":2},"videoUrl":"x","metadata":{"b":[1,{"c":null}],"a":"y"}}`)
	if post.Code != stdhttp.StatusCreated {
		t.Fatalf("post status=%d", post.Code)
	}
	created := kit.MustDecode[domain.Pothole](t, post.Body.Bytes())

	get := f.do(t, stdhttp.MethodGet, "/api/potholes/"+created.ID, "")
	if get.Body.String() != post.Body.String() {
		t.Fatalf("GET differs from POST\npost=%s\nget=%s", post.Body.String(), get.Body.String())
	}
}

func TestPatch_StatusOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	before := f.create(t, `{"location":{"latitude":1,"longitude":2},"videoUrl":"x","metadata":{"k":"v"}}`)

	rr := f.do(t, stdhttp.MethodPatch, "/api/potholes/"+before.ID, `{"status":"fixed"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("patch status=%d body=%s", rr.Code, rr.Body.String())
	}
	after := kit.MustDecode[domain.Pothole](t, rr.Body.Bytes())

	if after.Status != domain.StatusFixed {
		t.Fatalf("status=%q", after.Status)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatal("updatedAt should advance")
	}
	if after.ID != before.ID || after.Location != before.Location || after.VideoURL != before.VideoURL ||
		!after.DetectedAt.Equal(before.DetectedAt) || !after.CreatedAt.Equal(before.CreatedAt) ||
		string(after.Metadata) != string(before.Metadata) {
		t.Fatalf("other fields changed\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestPatch_RejectionsLeaveRecordUnchanged(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.create(t, validBody)
	orig := f.do(t, stdhttp.MethodGet, "/api/potholes/"+p.ID, "").Body.String()

	cases := []struct {
		name, path, body string
		status           int
	}{
		{"empty object", "/api/potholes/" + p.ID, `{}`, stdhttp.StatusBadRequest},
		{"empty body", "/api/potholes/" + p.ID, ``, stdhttp.StatusBadRequest},
		{"bad status", "/api/potholes/" + p.ID, `{"status":"broken"}`, stdhttp.StatusBadRequest},
		{"null fields", "/api/potholes/" + p.ID, `{"status":null,"metadata":null}`, stdhttp.StatusBadRequest},
		{"malformed id", "/api/potholes/xyz", `{"status":"fixed"}`, stdhttp.StatusBadRequest},
		{"missing", "/api/potholes/0123456789abcdef01234567", `{"status":"fixed"}`, stdhttp.StatusNotFound},
	}
	for _, tc := range cases {
		rr := f.do(t, stdhttp.MethodPatch, tc.path, tc.body)
		if rr.Code != tc.status {
			t.Fatalf("%s: status=%d want %d body=%s", tc.name, rr.Code, tc.status, rr.Body.String())
		}
	}

	if got := f.do(t, stdhttp.MethodGet, "/api/potholes/"+p.ID, "").Body.String(); got != orig {
		t.Fatalf("record changed\nbefore=%s\nafter=%s", orig, got)
	}

	rr := f.do(t, stdhttp.MethodPatch, "/api/potholes/"+p.ID, `{}`)
	if body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes()); body.Message != "No fields to update" {
		t.Fatalf("empty patch body %+v", body)
	}
}

func TestStorageFailure_IsGeneric500(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mem.FailWith(perr.FromMongo(errors.New("connection reset by 10.0.0.7"), "could not list potholes"))

	rr := f.do(t, stdhttp.MethodGet, "/api/potholes", "")
	if rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "10.0.0.7") {
		t.Fatalf("driver text leaked: %s", rr.Body.String())
	}

	f.mem.FailWith(errors.New("raw secret"))
	rr = f.do(t, stdhttp.MethodPost, "/api/potholes", validBody)
	var body map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if rr.Code != stdhttp.StatusInternalServerError || body["message"] != "internal server error" {
		t.Fatalf("status=%d body=%v", rr.Code, body)
	}
}

func TestStorageTimeout_IsGeneric500(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.create(t, validBody)

	cases := []struct {
		name, method, path, body string
	}{
		{"list", stdhttp.MethodGet, "/api/potholes", ""},
		{"get", stdhttp.MethodGet, "/api/potholes/" + p.ID, ""},
		{"patch", stdhttp.MethodPatch, "/api/potholes/" + p.ID, `{"status":"fixed"}`},
		{"create", stdhttp.MethodPost, "/api/potholes", validBody},
	}
	f.mem.FailWith(perr.FromMongo(context.DeadlineExceeded, "could not reach storage"))
	for _, tc := range cases {
		rr := f.do(t, tc.method, tc.path, tc.body)
		if rr.Code != stdhttp.StatusInternalServerError {
			t.Fatalf("%s: status=%d body=%s", tc.name, rr.Code, rr.Body.String())
		}
		body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes())
		if body.Code != perr.ErrorCodeDB || strings.Contains(rr.Body.String(), "deadline") {
			t.Fatalf("%s: body=%s", tc.name, rr.Body.String())
		}
	}
}

func TestMalformedID_CheckedBeforeBody(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	cases := []struct {
		name, method, body string
	}{
		{"patch empty body", stdhttp.MethodPatch, ""},
		{"patch bad status", stdhttp.MethodPatch, `{"status":"broken"}`},
		{"patch malformed json", stdhttp.MethodPatch, `{"status":`},
		{"get", stdhttp.MethodGet, ""},
	}
	for _, tc := range cases {
		rr := f.do(t, tc.method, "/api/potholes/nope", tc.body)
		if rr.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: status=%d", tc.name, rr.Code)
		}
		body := kit.MustDecode[phttp.ErrorBody](t, rr.Body.Bytes())
		if body.Message != "Invalid ID" || body.Field != "id" {
			t.Fatalf("%s: body=%+v", tc.name, body)
		}
	}
}
