// internal/app/lifecycle/service.go

// Package lifecycle implements the member-facing domain operations:
// registration, attendance entry/exit, dues billing and payment, and
// the dashboard rollups. Operations that write several collections run
// through the transaction runner so a failure partway leaves no
// partial state.
package lifecycle

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	activitystore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/activity"
	attendancestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/attendance"
	duestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/dues"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/activitylog"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/txn"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// Validation failures surfaced to handlers as 422s.
var (
	ErrNameRequired  = errors.New("full name is required")
	ErrPhoneRequired = errors.New("phone is required")
	ErrSeatRequired  = errors.New("seat number is required")
	ErrBadFee        = errors.New("monthly fee must be positive")
	ErrMemberFrozen  = errors.New("member is inactive")
	ErrBadDate       = errors.New(`date must be formatted "2006-01-02"`)
	ErrBadPassword   = errors.New("password is required")
)

// Service bundles the stores behind the domain operations.
type Service struct {
	Members    *memberstore.Store
	Attendance *attendancestore.Store
	Dues       *duestore.Store
	Activities *activitystore.Store

	Txn      *txn.Runner
	Activity *activitylog.Logger
	Log      *zap.Logger

	// DefaultFee, when positive, fills in a new member's monthly fee
	// if the admin left it out.
	DefaultFee int64

	// Now is the clock; tests override it for date-sensitive behavior.
	Now func() time.Time
}

// New wires a Service from a database handle. The activity logger may
// be nil (events are then dropped).
func New(db *mongo.Database, runner *txn.Runner, activity *activitylog.Logger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Members:    memberstore.New(db),
		Attendance: attendancestore.New(db),
		Dues:       duestore.New(db),
		Activities: activitystore.New(db),
		Txn:        runner,
		Activity:   activity,
		Log:        log,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// checkDate validates an optional "2006-01-02" query bound.
func checkDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ErrBadDate
	}
	return nil
}
