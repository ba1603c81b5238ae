// internal/app/features/attendance/handler.go

// Package attendance serves the library-wide attendance views: who is
// in the library today and the historical range listing. Per-member
// entry and exit live with the member routes.
package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

type Handler struct {
	Svc    *lifecycle.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(svc *lifecycle.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger, ErrLog: errLog}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// ServeToday lists visits for the current calendar date, open and
// closed. Admins see the whole library; a signed-in member sees only
// their own.
// GET /attendance/today
func (h *Handler) ServeToday(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var visits []models.Attendance
	var err error
	if u.IsAdmin() {
		visits, err = h.Svc.TodayAttendance(ctx)
	} else {
		var memberID primitive.ObjectID
		memberID, err = primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			uierrors.RenderForbidden(w, "")
			return
		}
		today := h.Svc.Now().UTC().Format(models.DateLayout)
		visits, err = h.Svc.AttendanceInRange(ctx, today, today, &memberID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "today attendance", err, "")
		return
	}
	writeJSON(w, visits)
}

// ServeRange lists visits between ?start= and ?end= (inclusive,
// "2006-01-02"), optionally narrowed to ?member=<hex id>.
// GET /attendance
func (h *Handler) ServeRange(w http.ResponseWriter, r *http.Request) {
	var memberID *primitive.ObjectID
	if hex := r.URL.Query().Get("member"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			uierrors.RenderUnprocessable(w, "member must be a hex record id")
			return
		}
		memberID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	visits, err := h.Svc.AttendanceInRange(ctx,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"), memberID)
	if err != nil {
		if errors.Is(err, lifecycle.ErrBadDate) {
			uierrors.RenderUnprocessable(w, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "attendance range", err, "")
		return
	}
	writeJSON(w, visits)
}
