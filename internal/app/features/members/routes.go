// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// Routes mounts all member routes under the path where the caller
// mounts it. Typically: r.Mount("/members", members.Routes(h, sm)).
// The caller's router must run sm.LoadSessionUser first.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Admin-only management.
	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireRole(auth.RoleAdmin))

		ar.Get("/", h.ServeList)
		ar.Post("/", h.HandleCreate)
		ar.Patch("/{id}", h.HandleUpdate)
		ar.Delete("/{id}", h.HandleDelete)
		ar.Post("/{id}/toggle-status", h.HandleToggleStatus)
		ar.Put("/{id}/password", h.HandleSetPassword)
	})

	// Member-or-admin; the policy layer narrows members to their own
	// record.
	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireSignedIn)

		mr.Get("/{id}", h.ServeView)
		mr.Get("/{id}/attendance", h.ServeAttendance)
		mr.Get("/{id}/dues", h.ServeDues)
		mr.Post("/{id}/entry", h.HandleEntry)
		mr.Post("/{id}/exit", h.HandleExit)
	})

	return r
}
