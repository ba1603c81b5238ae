// internal/app/features/reports/handler.go

// Package reports streams CSV exports of attendance and dues with the
// same filters as the JSON listings.
package reports

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
)

type Handler struct {
	Svc    *lifecycle.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(svc *lifecycle.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger, ErrLog: errLog}
}

// queryMemberID parses the optional ?member= filter. The bool reports
// whether parsing succeeded; on failure a 422 has been written.
func queryMemberID(w http.ResponseWriter, r *http.Request) (*primitive.ObjectID, bool) {
	hex := r.URL.Query().Get("member")
	if hex == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		uierrors.RenderUnprocessable(w, "member must be a hex record id")
		return nil, false
	}
	return &id, true
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
