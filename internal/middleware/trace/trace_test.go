package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	if !strings.HasPrefix(a, "req_") {
		t.Fatalf("id %q missing req_ prefix", a)
	}
	if a == b {
		t.Fatalf("two ids collided: %q", a)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestWrapInjectsRequestID(t *testing.T) {
	m := NewMiddleware(nil)

	var seen string
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" {
		t.Fatal("handler saw no request id")
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d", rr.Code)
	}
	if m.Requests() != 1 {
		t.Fatalf("requests=%d, want 1", m.Requests())
	}
}
