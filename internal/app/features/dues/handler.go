// internal/app/features/dues/handler.go

// Package dues serves the admin billing views: the ledger listing,
// manual due creation, and settlement with automatic rollover.
package dues

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	duestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/dues"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, duestore.ErrNotFound):
		uierrors.RenderNotFound(w, "due not found")
	case errors.Is(err, duestore.ErrAlreadyPaid):
		uierrors.RenderConflict(w, err.Error())
	case errors.Is(err, memberstore.ErrNotFound):
		uierrors.RenderNotFound(w, "member not found")
	case errors.Is(err, lifecycle.ErrBadFee), errors.Is(err, lifecycle.ErrBadDate):
		uierrors.RenderUnprocessable(w, err.Error())
	default:
		h.ErrLog.LogServerError(w, r, logMsg, err, "")
	}
}

// ServeList returns the dues ledger, newest first. ?status= accepts
// pending, paid, or overdue (derived); ?member= narrows to one member.
// GET /dues
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.DuePending, models.DuePaid, models.DueOverdue:
	default:
		uierrors.RenderUnprocessable(w, `status must be "pending"|"paid"|"overdue"`)
		return
	}

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

	dues, err := h.Svc.ListDues(ctx, status, memberID)
	if err != nil {
		h.respondErr(w, r, err, "list dues")
		return
	}
	writeJSON(w, http.StatusOK, dues)
}

type createDueRequest struct {
	MemberID    string `json:"member_id"`
	Amount      int64  `json:"amount"`
	PeriodStart string `json:"period_start"`
}

// HandleCreate opens a billing period by hand, outside the automatic
// join/payment rollover.
// POST /dues
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createDueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create due", err, "")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		uierrors.RenderUnprocessable(w, "member_id must be a hex record id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	due, err := h.Svc.CreateDue(ctx, memberID, req.Amount, req.PeriodStart)
	if err != nil {
		h.respondErr(w, r, err, "create due")
		return
	}
	writeJSON(w, http.StatusCreated, due)
}

type markPaidResponse struct {
	Paid *models.Due `json:"paid"`
	Next *models.Due `json:"next,omitempty"`
}

// HandleMarkPaid settles a pending due and returns the rollover period.
// POST /dues/{id}/pay
func (h *Handler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, "due not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	paid, next, err := h.Svc.MarkDuePaid(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "mark due paid")
		return
	}
	writeJSON(w, http.StatusOK, markPaidResponse{Paid: paid, Next: next})
}
