// internal/domain/models/due.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Due statuses. Only "pending" and "paid" are stored; "overdue" is
// derived at read time so a stale pending due never needs a write to
// become overdue.
const (
	DuePending = "pending"
	DuePaid    = "paid"
	DueOverdue = "overdue"
)

// Due is one billing period's obligation for one member.
type Due struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   primitive.ObjectID `bson:"member_id" json:"member_id"`
	MemberName string             `bson:"member_name" json:"member_name"`

	// Amount is in whole rupees.
	Amount int64 `bson:"amount" json:"amount"`

	// DueDate is "2006-01-02": period start + 30 days.
	DueDate  string     `bson:"due_date" json:"due_date"`
	PaidDate *time.Time `bson:"paid_date" json:"paid_date"`
	Status   string     `bson:"status" json:"status"`

	// Period is the human label for the billing period, e.g. "Jan 2024",
	// derived from the period start date.
	Period string `bson:"period" json:"period"`

	// ReceiptNo is assigned when the due is paid.
	ReceiptNo string `bson:"receipt_no,omitempty" json:"receipt_no,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// EffectiveStatus returns the stored status, except that a pending due
// whose due date has passed reads as overdue.
func (d *Due) EffectiveStatus(now time.Time) string {
	if d.Status != DuePending {
		return d.Status
	}
	if d.DueDate != "" && d.DueDate < now.Format(DateLayout) {
		return DueOverdue
	}
	return DuePending
}

// PeriodLabel formats a period start date as the human label stored on
// a due, e.g. 2024-01-15 -> "Jan 2024".
func PeriodLabel(periodStart time.Time) string {
	return periodStart.Format("Jan 2006")
}

// DueDateFor returns the due date for a period starting at the given
// date: thirty days later, formatted as a calendar date.
func DueDateFor(periodStart time.Time) string {
	return periodStart.AddDate(0, 0, 30).Format(DateLayout)
}
