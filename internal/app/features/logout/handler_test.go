package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/features/logout"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

func TestServeLogout_ExpiresSessionCookie(t *testing.T) {
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "studyhall_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := logout.NewHandler(sm, zap.NewNop())

	// Sign in first so there is a cookie to expire.
	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest("POST", "/login/admin", nil)
	if err := sm.SignIn(signInRec, signInReq, auth.SessionUser{ID: "abc", Role: auth.RoleAdmin}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie from sign-in")
	}

	req := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "studyhall_session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected an expiring session cookie")
	}
}

func TestServeLogout_AnonymousOK(t *testing.T) {
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "studyhall_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := logout.NewHandler(sm, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest("POST", "/logout", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
