// internal/app/features/dues/routes.go
package dues

import (
	"github.com/go-chi/chi/v5"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// Routes mounts the dues ledger endpoints. Admin only; members read
// their own billing history through the member routes.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(auth.RoleAdmin))
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/{id}/pay", h.HandleMarkPaid)
	return r
}
