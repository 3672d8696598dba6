package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/features/logout"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestServeLogoutRedirectsToLogin(t *testing.T) {
	h := logout.NewHandler(zap.NewNop())

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
}

func TestServeLogoutClearsSessionCookie(t *testing.T) {
	if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "test-session", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}
	t.Cleanup(func() { auth.Store = nil })

	h := logout.NewHandler(zap.NewNop())
	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected the session cookie to be set for deletion")
	}
}
