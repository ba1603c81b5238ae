// internal/app/features/dashboard/handler.go

// Package dashboard serves the admin rollups.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
)

type Handler struct {
	Svc    *lifecycle.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(svc *lifecycle.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger, ErrLog: errLog}
}

// ServeStats returns the dashboard numbers.
// GET /dashboard/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard stats", err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(stats)
}
