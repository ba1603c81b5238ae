// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/go-chi/chi/v5"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// Routes mounts the attendance listing endpoints. The historical range
// listing is admin-only; /today is open to any signed-in user, with the
// handler narrowing members to their own visits.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireRole(auth.RoleAdmin))
		ar.Get("/", h.ServeRange)
	})

	r.Group(func(ur chi.Router) {
		ur.Use(sm.RequireSignedIn)
		ur.Get("/today", h.ServeToday)
	})

	return r
}
