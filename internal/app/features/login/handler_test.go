package login_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/features/login"
	adminstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/admins"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
	"github.com/sanhub4u33-sketch/studyhall/internal/testutil"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newHandler(t *testing.T, db *mongo.Database) *login.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager(testSessionKey, "studyhall_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	return login.NewHandler(db, sm, errLog, "", "", "http://localhost:8080", testSessionKey, zap.NewNop())
}

func seedAdmin(t *testing.T, db *mongo.Database, email, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := adminstore.New(db).Upsert(ctx, "Test Admin", email, string(hash)); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func seedMember(t *testing.T, db *mongo.Database, email, password, status string) models.Member {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := memberstore.New(db)
	m, err := store.Create(ctx, models.Member{
		FullName:   "Asha Rao",
		Email:      email,
		Phone:      "9876543210",
		SeatNumber: "A-12",
		MonthlyFee: 500,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := store.SetPasswordHash(ctx, m.ID, string(hash)); err != nil {
		t.Fatalf("set password: %v", err)
	}
	return m
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAdminLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	seedAdmin(t, db, "owner@studyhall.test", "s3cret-pass")

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h.HandleAdminLogin, `{"email":"Owner@StudyHall.test","password":"s3cret-pass"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Role string `json:"role"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("parse response: %v", err)
		}
		if resp.Role != auth.RoleAdmin {
			t.Errorf("role = %q, want admin", resp.Role)
		}
		if len(rec.Result().Cookies()) == 0 {
			t.Error("expected a session cookie")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.HandleAdminLogin, `{"email":"owner@studyhall.test","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, h.HandleAdminLogin, `{"email":"ghost@studyhall.test","password":"s3cret-pass"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := postJSON(t, h.HandleAdminLogin, `{"email":"owner@studyhall.test"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})
}

func TestMemberLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	m := seedMember(t, db, "asha@studyhall.test", "member-pass", models.MemberActive)

	t.Run("by id", func(t *testing.T) {
		rec := postJSON(t, h.HandleMemberLogin,
			`{"login":"`+m.ID.Hex()+`","password":"member-pass"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("parse response: %v", err)
		}
		if resp.Role != auth.RoleMember || resp.ID != m.ID.Hex() {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("by email", func(t *testing.T) {
		rec := postJSON(t, h.HandleMemberLogin,
			`{"login":"asha@studyhall.test","password":"member-pass"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.HandleMemberLogin,
			`{"login":"asha@studyhall.test","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		rec := postJSON(t, h.HandleMemberLogin,
			`{"login":"ghost@studyhall.test","password":"member-pass"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestMemberLogin_InactiveRefused(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	m := seedMember(t, db, "dormant@studyhall.test", "member-pass", models.MemberInactive)

	rec := postJSON(t, h.HandleMemberLogin,
		`{"login":"`+m.ID.Hex()+`","password":"member-pass"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	// Right password, inactive account: no session cookie may be issued.
	for _, c := range rec.Result().Cookies() {
		if c.Name == "studyhall_session" && c.MaxAge >= 0 && c.Value != "" {
			t.Error("inactive member received a session cookie")
		}
	}
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := httptest.NewRequest("GET", "/login/google", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "google_not_configured") {
		t.Errorf("redirect = %q", loc)
	}
}

func TestGoogleCallback_BadState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := httptest.NewRequest("GET", "/login/google/callback?state=forged&code=x", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid_state") {
		t.Errorf("redirect = %q", loc)
	}
}
