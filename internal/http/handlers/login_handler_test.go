package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brunovsouza/go-wishlist-backend/internal/auth"
)

func TestLogin_ValidCredentials(t *testing.T) {
	r := newTestRouter(t, &stubPersonService{}, &stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/login/", nil)
	req.SetBasicAuth("alice", "pwd")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	msg, data := decodeEnvelope(t, w)
	if msg != "Success" {
		t.Fatalf("message = %q", msg)
	}
	tok, ok := data["token"].(string)
	if !ok || tok == "" {
		t.Fatalf("token = %v", data["token"])
	}

	claims, err := auth.Verify("handler-test-secret", tok)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.User != "alice" {
		t.Fatalf("claims.User = %q, want alice", claims.User)
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 31*time.Minute || ttl < 29*time.Minute {
		t.Fatalf("token ttl = %v, want ~30m", ttl)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(t, &stubPersonService{}, &stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/login/", nil)
	req.SetBasicAuth("alice", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != `Basic realm="Login required"` {
		t.Fatalf("WWW-Authenticate = %q", got)
	}
	msg, _ := decodeEnvelope(t, w)
	if msg != "Invalid credentials" {
		t.Fatalf("message = %q", msg)
	}
}

func TestLogin_NoCredentials(t *testing.T) {
	r := newTestRouter(t, &stubPersonService{}, &stubProductService{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected a WWW-Authenticate challenge")
	}
}

func TestPing_ReportsRoute(t *testing.T) {
	r := newTestRouter(t, &stubPersonService{}, &stubProductService{}, nil)
	r.GET("/ping", New(&stubPersonService{}, &stubProductService{}, nil, "s", "p", time.Minute).Ping)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	msg, data := decodeEnvelope(t, w)
	if msg != "Success" || data["route"] != "/ping" {
		t.Fatalf("envelope = %q %v", msg, data)
	}
}
