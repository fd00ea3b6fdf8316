package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type observed struct {
	method string
	status int
}

type recordObserver struct {
	got []observed
}

func (o *recordObserver) ObserveHTTPRequest(method, route string, status int) {
	o.got = append(o.got, observed{method: method, status: status})
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatalf("expected request id in context")
	}
	if rr.Header().Get(headerRequestID) != seen {
		t.Fatalf("response header and context disagree: %s vs %s", rr.Header().Get(headerRequestID), seen)
	}
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc" {
		t.Fatalf("expected incoming id to be kept, got %s", seen)
	}
}

func TestRecover_Returns500(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate_story", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "internal_error") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	if !strings.Contains(logs.String(), "panic recovered") {
		t.Fatalf("panic was not logged: %s", logs.String())
	}
}

func TestLogging_LevelsAndSkips(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	observer := &recordObserver{}

	h := Logging(logger, observer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte("ok"))
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	if logs.Len() != 0 {
		t.Fatalf("ping must not be logged: %s", logs.String())
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/fail", nil))
	if !strings.Contains(logs.String(), `"level":"ERROR"`) || !strings.Contains(logs.String(), `"status":500`) {
		t.Fatalf("5xx must be logged at error level: %s", logs.String())
	}

	logs.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	if !strings.Contains(logs.String(), `"level":"INFO"`) || !strings.Contains(logs.String(), `"bytes":2`) {
		t.Fatalf("unexpected log line: %s", logs.String())
	}

	if len(observer.got) != 3 || observer.got[1].status != http.StatusInternalServerError {
		t.Fatalf("unexpected observations: %+v", observer.got)
	}
}
