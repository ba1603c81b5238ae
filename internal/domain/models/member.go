// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member statuses. Status is a strict two-state toggle.
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
)

// Shift values a member may be assigned to. Shift is optional;
// an empty string means no fixed shift.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftEvening   = "evening"
	ShiftFullDay   = "full_day"
)

// Member is a library member's identity and billing profile.
//
// PasswordHash is the bcrypt hash used for member-portal login. It is
// never serialized to JSON; only the login feature reads it.
type Member struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone" json:"phone"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`
	SeatNumber string             `bson:"seat_number" json:"seat_number"`
	Shift      string             `bson:"shift,omitempty" json:"shift,omitempty"`

	// MonthlyFee is the member's fee in whole rupees.
	MonthlyFee int64 `bson:"monthly_fee" json:"monthly_fee"`

	Status string `bson:"status" json:"status"`

	// JoinDate is the calendar date the member joined, "2006-01-02".
	JoinDate string `bson:"join_date" json:"join_date"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the member may use the library and log in.
func (m *Member) IsActive() bool { return m.Status == MemberActive }
