package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/testutil"
	"go.uber.org/zap"
)

func TestSafeReturn(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", "/calendario"},
		{"/alumnos", "/alumnos"},
		{"/calendario?vista=dia&fecha=2024-03-15", "/calendario?vista=dia&fecha=2024-03-15"},
		{"//evil.example.com", "/calendario"},
		{"https://evil.example.com", "/calendario"},
	}
	for _, c := range cases {
		if got := safeReturn(c.raw); got != c.want {
			t.Errorf("safeReturn(%q): got %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestHandleLoginStartsSessionAndRedirects(t *testing.T) {
	if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "test-session", "", false, zap.NewNop()); err != nil {
		t.Fatalf("init session store: %v", err)
	}
	t.Cleanup(func() { auth.Store = nil })

	backend := testutil.NewBackend(t)
	h := NewHandler(backend.Client(), zap.NewNop())

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "secreto")
	form.Set("return", "/calendario?vista=dia")
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/calendario?vista=dia" {
		t.Errorf("Location: got %q, want the return URL", loc)
	}

	muts := backend.MutationsSnapshot()
	if len(muts) != 1 || muts[0].Path != "/api/v1/auth/login" {
		t.Fatalf("expected one login call, got %+v", muts)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie after login")
	}
}
