// internal/app/features/members/crud.go
package members

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/policy/memberpolicy"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

type createMemberRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	SeatNumber string `json:"seat_number"`
	Shift      string `json:"shift"`
	MonthlyFee int64  `json:"monthly_fee"`
	JoinDate   string `json:"join_date"`
	Password   string `json:"password"`
}

type createMemberResponse struct {
	Member   *models.Member `json:"member"`
	FirstDue *models.Due    `json:"first_due"`
}

// HandleCreate registers a new member with their first billing period.
// POST /members
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create member", err, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, due, err := h.Svc.AddMember(ctx, lifecycle.NewMemberInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		SeatNumber: req.SeatNumber,
		Shift:      req.Shift,
		MonthlyFee: req.MonthlyFee,
		JoinDate:   req.JoinDate,
		Password:   req.Password,
	})
	if err != nil {
		h.respondErr(w, r, err, "create member")
		return
	}
	writeJSON(w, http.StatusCreated, createMemberResponse{Member: m, FirstDue: due})
}

// ServeList returns members, filtered server-side by name/seat query
// and status.
// GET /members?query=&status=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Svc.ListMembers(ctx, r.URL.Query().Get("query"), r.URL.Query().Get("status"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members", err, "")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ServeView returns one member. Admins see anyone; a member sees only
// themself.
// GET /members/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !memberpolicy.CanViewMember(r, id) {
		uierrors.RenderForbidden(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Svc.GetMember(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "get member")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updateMemberRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	SeatNumber *string `json:"seat_number"`
	Shift      *string `json:"shift"`
	MonthlyFee *int64  `json:"monthly_fee"`
	Status     *string `json:"status"`
}

// HandleUpdate merges the supplied fields into the member record.
// Omitted fields stay as they are.
// PATCH /members/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update member", err, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Svc.UpdateMember(ctx, id, lifecycle.UpdateMemberInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		SeatNumber: req.SeatNumber,
		Shift:      req.Shift,
		MonthlyFee: req.MonthlyFee,
		Status:     req.Status,
	})
	if err != nil {
		h.respondErr(w, r, err, "update member")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// HandleSetPassword replaces a member's portal credential.
// PUT /members/{id}/password
func (h *Handler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode set password", err, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.SetMemberPassword(ctx, id, req.Password); err != nil {
		h.respondErr(w, r, err, "set member password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleStatus flips active⇄inactive.
// POST /members/{id}/toggle-status
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status, err := h.Svc.ToggleMemberStatus(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "toggle member status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleDelete removes the member record; history keeps the
// denormalized name.
// DELETE /members/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.RemoveMember(ctx, id); err != nil {
		h.respondErr(w, r, err, "delete member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
