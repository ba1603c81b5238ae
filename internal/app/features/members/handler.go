// internal/app/features/members/handler.go
package members

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	attendancestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/attendance"
	duestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/dues"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/go-chi/chi/v5"
)

// Handler is the feature-level handler for member records and the
// member-scoped sub-resources (attendance, dues, entry, exit).
type Handler struct {
	Svc    *lifecycle.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(svc *lifecycle.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:    svc,
		Log:    logger,
		ErrLog: errLog,
	}
}

// pathID parses the {id} route parameter. A malformed ID renders a 404
// and returns false; record IDs are never guessable strings.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, "member not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondErr maps domain errors onto HTTP statuses. Anything unmapped
// is an internal error.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, memberstore.ErrNotFound):
		uierrors.RenderNotFound(w, "member not found")
	case errors.Is(err, memberstore.ErrDuplicateEmail):
		uierrors.RenderConflict(w, err.Error())
	case errors.Is(err, attendancestore.ErrAlreadyPresent),
		errors.Is(err, attendancestore.ErrNoOpenVisit),
		errors.Is(err, duestore.ErrAlreadyPaid):
		uierrors.RenderConflict(w, err.Error())
	case errors.Is(err, duestore.ErrNotFound):
		uierrors.RenderNotFound(w, "due not found")
	case errors.Is(err, lifecycle.ErrNameRequired),
		errors.Is(err, lifecycle.ErrPhoneRequired),
		errors.Is(err, lifecycle.ErrSeatRequired),
		errors.Is(err, lifecycle.ErrBadFee),
		errors.Is(err, lifecycle.ErrBadDate),
		errors.Is(err, lifecycle.ErrBadPassword):
		uierrors.RenderUnprocessable(w, err.Error())
	case errors.Is(err, lifecycle.ErrMemberFrozen):
		uierrors.RenderConflict(w, err.Error())
	default:
		h.ErrLog.LogServerError(w, r, logMsg, err, "")
	}
}
