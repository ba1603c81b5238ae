// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	adminstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/admins"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// Handler authenticates admins and members and issues session cookies.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Admins     *adminstore.Store
	Members    *memberstore.Store

	// Google OAuth configuration; empty ClientID disables the flow.
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// stateCodec signs the OAuth state cookie.
	stateCodec *securecookie.SecureCookie
}

// NewHandler constructs a login Handler. sessionKey also keys the OAuth
// state cookie so no extra secret is needed.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger,
	clientID, clientSecret, baseURL, sessionKey string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		Admins:       adminstore.New(db),
		Members:      memberstore.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/login/google/callback",
		stateCodec:   securecookie.New([]byte(sessionKey), nil),
	}
}

// signedInUser is the success payload for both login endpoints.
type signedInUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

func (h *Handler) respondSignedIn(w http.ResponseWriter, r *http.Request, u auth.SessionUser) {
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "unable to create session")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(signedInUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}
