// internal/app/system/activitylog/logger.go
package activitylog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	activitystore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/activity"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// Config controls where activity events go.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only),
// "off" (disabled).
type Config struct {
	Mode string
}

// Logger records domain activity events. Events land in the activities
// collection (the member-visible feed) and in the structured log.
type Logger struct {
	store  *activitystore.Store
	zapLog *zap.Logger
	config Config
}

// New creates an activity Logger.
func New(store *activitystore.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// Log records an activity event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use a nil
// activity logger).
func (l *Logger) Log(ctx context.Context, event models.Activity) {
	if l == nil {
		return
	}

	setting := l.config.Mode
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.zapLog.Info("activity",
			zap.String("type", event.Type),
			zap.String("member_id", event.MemberID.Hex()),
			zap.String("member_name", event.MemberName),
			zap.String("description", event.Description),
		)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Append(ctx, event); err != nil {
			l.zapLog.Error("failed to store activity event",
				zap.Error(err),
				zap.String("type", event.Type),
			)
		}
	}
}

// --- Domain events ---

// MemberJoined logs a new member registration.
func (l *Logger) MemberJoined(ctx context.Context, memberID primitive.ObjectID, memberName string) {
	l.Log(ctx, models.Activity{
		Type:        models.ActivityMemberAdded,
		MemberID:    memberID,
		MemberName:  memberName,
		Description: fmt.Sprintf("New member %s joined the library", memberName),
	})
}

// MemberRemoved logs a member deletion.
func (l *Logger) MemberRemoved(ctx context.Context, memberID primitive.ObjectID, memberName string) {
	l.Log(ctx, models.Activity{
		Type:        models.ActivityMemberRemoved,
		MemberID:    memberID,
		MemberName:  memberName,
		Description: fmt.Sprintf("%s was removed from the library", memberName),
	})
}

// Entry logs a member entering the library.
func (l *Logger) Entry(ctx context.Context, memberID primitive.ObjectID, memberName string) {
	l.Log(ctx, models.Activity{
		Type:        models.ActivityEntry,
		MemberID:    memberID,
		MemberName:  memberName,
		Description: fmt.Sprintf("%s entered the library", memberName),
	})
}

// Exit logs a member leaving the library.
func (l *Logger) Exit(ctx context.Context, memberID primitive.ObjectID, memberName string) {
	l.Log(ctx, models.Activity{
		Type:        models.ActivityExit,
		MemberID:    memberID,
		MemberName:  memberName,
		Description: fmt.Sprintf("%s left the library", memberName),
	})
}

// Payment logs a dues payment.
func (l *Logger) Payment(ctx context.Context, memberID primitive.ObjectID, memberName string, amount int64) {
	l.Log(ctx, models.Activity{
		Type:        models.ActivityPayment,
		MemberID:    memberID,
		MemberName:  memberName,
		Description: fmt.Sprintf("%s paid ₹%d", memberName, amount),
	})
}
