// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the login endpoints. Typically mounted at /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/admin", h.HandleAdminLogin)
	r.Post("/member", h.HandleMemberLogin)
	r.Get("/google", h.ServeGoogleLogin)
	r.Get("/google/callback", h.ServeGoogleCallback)
	return r
}
