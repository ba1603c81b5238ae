// internal/app/features/members/history.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/policy/memberpolicy"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
)

// ServeAttendance lists one member's visit history, optionally bounded
// by ?start= and ?end= calendar dates.
// GET /members/{id}/attendance
func (h *Handler) ServeAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !memberpolicy.CanViewMember(r, id) {
		uierrors.RenderForbidden(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	visits, err := h.Svc.MemberAttendance(ctx, id,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.respondErr(w, r, err, "member attendance")
		return
	}
	writeJSON(w, http.StatusOK, visits)
}

// ServeDues lists one member's billing history, newest first, with
// overdue derived against today.
// GET /members/{id}/dues
func (h *Handler) ServeDues(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !memberpolicy.CanViewMember(r, id) {
		uierrors.RenderForbidden(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dues, err := h.Svc.MemberDues(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "member dues")
		return
	}
	writeJSON(w, http.StatusOK, dues)
}

// HandleEntry opens a visit for the member.
// POST /members/{id}/entry
func (h *Handler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !memberpolicy.CanMarkAttendance(r, id) {
		uierrors.RenderForbidden(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.Svc.MarkEntry(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "mark entry")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// HandleExit closes the member's open visit.
// POST /members/{id}/exit
func (h *Handler) HandleExit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !memberpolicy.CanMarkAttendance(r, id) {
		uierrors.RenderForbidden(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.Svc.MarkExit(ctx, id)
	if err != nil {
		h.respondErr(w, r, err, "mark exit")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
