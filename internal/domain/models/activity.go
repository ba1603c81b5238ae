// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types, one per mutating domain event.
const (
	ActivityEntry         = "entry"
	ActivityExit          = "exit"
	ActivityPayment       = "payment"
	ActivityMemberAdded   = "member_added"
	ActivityMemberRemoved = "member_removed"
)

// Activity is an append-only audit trail entry. Records are write-once
// and listed newest first.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type" json:"type"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"member_id"`
	MemberName  string             `bson:"member_name" json:"member_name"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Description string             `bson:"description" json:"description"`
}
