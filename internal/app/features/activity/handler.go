// internal/app/features/activity/handler.go

// Package activity serves the append-only activity feed.
package activity

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	activitystore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/activity"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/timeouts"
)

const defaultFeedLimit = 50
const maxFeedLimit = 500

type Handler struct {
	Activities *activitystore.Store
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Activities: activitystore.New(db),
		Log:        logger,
		ErrLog:     errLog,
	}
}

// ServeRecent returns the newest feed entries, most recent first.
// ?limit= caps the page size.
// GET /activity
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultFeedLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			uierrors.RenderUnprocessable(w, "limit must be a positive integer")
			return
		}
		if n > maxFeedLimit {
			n = maxFeedLimit
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	feed, err := h.Activities.Recent(ctx, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recent activity", err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(feed)
}
