// internal/app/features/login/password.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	adminstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/admins"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/normalize"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAdminLogin authenticates an admin by email and password.
// POST /login/admin
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode admin login", err, "")
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		uierrors.RenderUnprocessable(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminstore.ErrNotFound) {
			h.Log.Info("admin login failed: unknown email", zap.String("email", email))
			uierrors.RenderUnauthorized(w, "invalid email or password")
			return
		}
		h.ErrLog.LogServerError(w, r, "admin lookup failed", err, "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		h.Log.Info("admin login failed: wrong password", zap.String("email", email))
		uierrors.RenderUnauthorized(w, "invalid email or password")
		return
	}

	h.Log.Info("admin signed in", zap.String("email", email))
	h.respondSignedIn(w, r, auth.SessionUser{
		ID:    admin.ID.Hex(),
		Name:  admin.FullName,
		Email: admin.Email,
		Role:  auth.RoleAdmin,
	})
}

type memberLoginRequest struct {
	// Login is the member's hex record ID or their email.
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleMemberLogin authenticates a member by record ID or email plus
// password. Inactive members are refused even with the right password.
// POST /login/member
func (h *Handler) HandleMemberLogin(w http.ResponseWriter, r *http.Request) {
	var req memberLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode member login", err, "")
		return
	}
	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		uierrors.RenderUnprocessable(w, "login and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.lookupMember(ctx, login)
	if err != nil {
		if errors.Is(err, memberstore.ErrNotFound) {
			h.Log.Info("member login failed: not found", zap.String("login", login))
			uierrors.RenderNotFound(w, "member not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member lookup failed", err, "")
		return
	}
	if m.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(req.Password)) != nil {
		h.Log.Info("member login failed: wrong password", zap.String("member_id", m.ID.Hex()))
		uierrors.RenderUnauthorized(w, "invalid credentials")
		return
	}
	if !m.IsActive() {
		h.Log.Info("member login refused: inactive", zap.String("member_id", m.ID.Hex()))
		uierrors.RenderForbidden(w, "account inactive")
		return
	}

	h.Log.Info("member signed in", zap.String("member_id", m.ID.Hex()))
	h.respondSignedIn(w, r, auth.SessionUser{
		ID:    m.ID.Hex(),
		Name:  m.FullName,
		Email: m.Email,
		Role:  auth.RoleMember,
	})
}

// lookupMember resolves the login string as a hex record ID first, then
// as an email.
func (h *Handler) lookupMember(ctx context.Context, login string) (*models.Member, error) {
	if id, err := primitive.ObjectIDFromHex(login); err == nil {
		return h.Members.GetByID(ctx, id)
	}
	return h.Members.GetByEmail(ctx, login)
}
