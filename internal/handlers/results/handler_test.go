package results

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"gitlab.com/scoreboard.net/internal/adapter/logging"
	"gitlab.com/scoreboard.net/internal/core/services/result"
	"gitlab.com/scoreboard.net/internal/domain"
)

type fakeService struct {
	submitResultFn func(ctx context.Context, name string, score int32) (int64, error)
	listResultsFn  func(ctx context.Context) ([]*domain.Result, error)
}

func (f *fakeService) SubmitResult(ctx context.Context, name string, score int32) (int64, error) {
	if f.submitResultFn == nil {
		return 0, errors.New("SubmitResult not implemented")
	}
	return f.submitResultFn(ctx, name, score)
}

func (f *fakeService) ListResults(ctx context.Context) ([]*domain.Result, error) {
	if f.listResultsFn == nil {
		return nil, errors.New("ListResults not implemented")
	}
	return f.listResultsFn(ctx)
}

// memoryService stores results in a slice, standing in for the database.
type memoryService struct {
	mu      sync.Mutex
	results []*domain.Result
}

func (m *memoryService) SubmitResult(_ context.Context, name string, score int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.results) + 1)
	m.results = append(m.results, &domain.Result{ID: id, Name: name, Score: score})
	return id, nil
}

func (m *memoryService) ListResults(context.Context) ([]*domain.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Result, len(m.results))
	copy(out, m.results)
	return out, nil
}

func newRouter(svc result.IResultService) *mux.Router {
	r := mux.NewRouter()
	NewResultHandler(svc, logging.NewNopLogger()).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body["error"]
}

func TestSubmitResult(t *testing.T) {
	var gotName string
	var gotScore int32
	svc := &fakeService{
		submitResultFn: func(_ context.Context, name string, score int32) (int64, error) {
			gotName, gotScore = name, score
			return 11, nil
		},
	}

	rec := doRequest(t, newRouter(svc), http.MethodPost, "/submit", `{"name":"alice","score":"42"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp SubmitResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 11 || resp.Message != "Result submitted successfully" {
		t.Errorf("unexpected response %+v", resp)
	}
	if gotName != "alice" || gotScore != 42 {
		t.Errorf("service got (%q, %d), want (alice, 42)", gotName, gotScore)
	}
}

func TestSubmitResult_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty object", `{}`, msgMissingField},
		{"no body", ``, msgMissingField},
		{"malformed json", `{"name":`, msgMissingField},
		{"array body", `["name","score"]`, msgMissingField},
		{"null body", `null`, msgMissingField},
		{"trailing garbage", `{"name":"a","score":1} xyz`, msgMissingField},
		{"concatenated objects", `{"name":"a","score":1}{"name":"b"}`, msgMissingField},
		{"missing score", `{"name":"alice"}`, msgMissingField},
		{"missing name", `{"score":1}`, msgMissingField},
		{"null name", `{"name":null,"score":1}`, msgMissingField},
		{"score not a number", `{"name":"bob","score":"notanumber"}`, msgInvalidFormat},
		{"null score", `{"name":"bob","score":null}`, msgInvalidFormat},
		{"decimal string score", `{"name":"bob","score":"4.0"}`, msgInvalidFormat},
		{"object score", `{"name":"bob","score":{"v":1}}`, msgInvalidFormat},
		{"name not a string", `{"name":5,"score":1}`, msgInvalidFormat},
		{"score too large", `{"name":"bob","score":"3000000000"}`, msgOutOfRange},
		{"score too small", `{"name":"bob","score":-2147483649}`, msgOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				submitResultFn: func(context.Context, string, int32) (int64, error) {
					t.Fatal("service must not be called for invalid input")
					return 0, nil
				},
			}

			rec := doRequest(t, newRouter(svc), http.MethodPost, "/submit", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestSubmitResult_TrailingWhitespaceAccepted(t *testing.T) {
	svc := &fakeService{
		submitResultFn: func(context.Context, string, int32) (int64, error) { return 1, nil },
	}

	rec := doRequest(t, newRouter(svc), http.MethodPost, "/submit", "{\"name\":\"a\",\"score\":1}\n  ")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
}

func TestSubmitResult_ServiceError(t *testing.T) {
	svc := &fakeService{
		submitResultFn: func(context.Context, string, int32) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}

	rec := doRequest(t, newRouter(svc), http.MethodPost, "/submit", `{"name":"alice","score":1}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeError(t, rec); strings.Contains(msg, "connection refused") {
		t.Errorf("internal error detail leaked: %q", msg)
	}
}

func TestSubmitResult_WrongMethod(t *testing.T) {
	rec := doRequest(t, newRouter(&fakeService{}), http.MethodGet, "/submit", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestGetResults(t *testing.T) {
	svc := &fakeService{
		listResultsFn: func(context.Context) ([]*domain.Result, error) {
			return []*domain.Result{{ID: 1, Name: "alice", Score: 42}, {ID: 2, Name: "bob", Score: -7}}, nil
		},
	}

	rec := doRequest(t, newRouter(svc), http.MethodGet, "/results", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := `[{"id":1,"name":"alice","score":42},{"id":2,"name":"bob","score":-7}]`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestGetResults_EmptyIsArray(t *testing.T) {
	svc := &fakeService{
		listResultsFn: func(context.Context) ([]*domain.Result, error) { return []*domain.Result{}, nil },
	}

	rec := doRequest(t, newRouter(svc), http.MethodGet, "/results", "")

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestGetResults_ServiceError(t *testing.T) {
	svc := &fakeService{
		listResultsFn: func(context.Context) ([]*domain.Result, error) { return nil, errors.New("boom") },
	}

	rec := doRequest(t, newRouter(svc), http.MethodGet, "/results", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSubmitThenList(t *testing.T) {
	router := newRouter(&memoryService{})

	var ids []int64
	for _, body := range []string{
		`{"name":"alice","score":"42"}`,
		`{"name":"bob","score":7}`,
		`{"name":"alice","score":"42"}`,
	} {
		rec := doRequest(t, router, http.MethodPost, "/submit", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit %s: status %d", body, rec.Code)
		}
		var resp SubmitResultResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		ids = append(ids, resp.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not increasing: %v", ids)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/results", "")
	var got []domain.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0] != (domain.Result{ID: ids[0], Name: "alice", Score: 42}) {
		t.Errorf("unexpected first result %+v", got[0])
	}
}
