package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOriginListTrimsEntries(t *testing.T) {
	l := NewOriginList([]string{"http://a.test", " http://b.test", "  "})
	if !l.Allowed("http://a.test") || !l.Allowed("http://b.test") {
		t.Fatalf("trimmed origins must be allowed")
	}
	if l.Allowed("") || l.Allowed("http://c.test") {
		t.Fatalf("unexpected origin allowed")
	}

	l.Set([]string{"*"})
	if !l.Allowed("http://c.test") {
		t.Fatalf("wildcard must allow any origin")
	}
}

func TestCORSHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(NewOriginList([]string{"http://a.test", " http://b.test"})))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin string
		want   string
	}{
		{"http://b.test", "http://b.test"},
		{"http://evil.test", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Fatalf("origin %s: allow = %q, want %q", tt.origin, got, tt.want)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d, want 204", w.Code)
	}
}
