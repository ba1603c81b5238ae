// internal/app/features/activity/routes.go
package activity

import (
	"github.com/go-chi/chi/v5"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// Routes mounts the activity feed. Admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(auth.RoleAdmin))
	r.Get("/", h.ServeRecent)
	return r
}
