// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses. "present" marks an open visit (no exit yet);
// the open-visit partial unique index keys on this value.
const (
	AttendancePresent = "present"
	AttendanceLeft    = "left"
)

// DateLayout is the calendar-date format used on attendance and due
// records. ISO dates compare lexicographically, so range queries work
// directly on the string field.
const DateLayout = "2006-01-02"

// Attendance is one open-or-closed library visit.
//
// MemberName is denormalized so the record stays displayable after the
// member is deleted.
type Attendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   primitive.ObjectID `bson:"member_id" json:"member_id"`
	MemberName string             `bson:"member_name" json:"member_name"`

	// Date is the calendar date of entry, "2006-01-02".
	Date      string     `bson:"date" json:"date"`
	EntryTime time.Time  `bson:"entry_time" json:"entry_time"`
	ExitTime  *time.Time `bson:"exit_time" json:"exit_time"`

	Status string `bson:"status" json:"status"`
}

// Open reports whether the visit is still in progress.
func (a *Attendance) Open() bool { return a.ExitTime == nil }

// Duration returns the visit length, or zero if the visit is still open.
func (a *Attendance) Duration() time.Duration {
	if a.ExitTime == nil {
		return 0
	}
	return a.ExitTime.Sub(a.EntryTime)
}
