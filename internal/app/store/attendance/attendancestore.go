// internal/app/store/attendance/attendancestore.go
package attendancestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

var (
	// ErrAlreadyPresent is returned when a member with an open visit
	// tries to enter again. The partial unique index on
	// (member_id, status: "present") turns the race into a duplicate-key
	// error, so this holds even for concurrent entries.
	ErrAlreadyPresent = errors.New("member already has an open visit")
	// ErrNoOpenVisit is returned when closing a visit that is not open,
	// does not exist, or belongs to a different member.
	ErrNoOpenVisit = errors.New("no open visit to close")
)

// Store manages the attendance collection.
type Store struct {
	c *mongo.Collection
}

// New creates an attendance Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance")}
}

// Open records a member's entry. The record is created with
// status="present" and no exit time; the open-visit unique index
// rejects a second open record for the same member.
func (s *Store) Open(ctx context.Context, memberID primitive.ObjectID, memberName string, at time.Time) (models.Attendance, error) {
	rec := models.Attendance{
		ID:         primitive.NewObjectID(),
		MemberID:   memberID,
		MemberName: memberName,
		Date:       at.Format(models.DateLayout),
		EntryTime:  at,
		ExitTime:   nil,
		Status:     models.AttendancePresent,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Attendance{}, ErrAlreadyPresent
		}
		return models.Attendance{}, err
	}
	return rec, nil
}

// Close marks the exit on an open visit. The update is conditional on
// the record belonging to the member and still being open, so closing
// a closed or foreign record fails instead of silently rewriting it.
func (s *Store) Close(ctx context.Context, id, memberID primitive.ObjectID, at time.Time) (*models.Attendance, error) {
	filter := bson.M{
		"_id":       id,
		"member_id": memberID,
		"exit_time": nil,
	}
	update := bson.M{"$set": bson.M{
		"exit_time": at,
		"status":    models.AttendanceLeft,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Attendance
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoOpenVisit
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// OpenVisit returns the member's open visit, or nil if none exists.
// The unique index guarantees at most one open visit per member
// regardless of date, so a visit spanning midnight is still found.
func (s *Store) OpenVisit(ctx context.Context, memberID primitive.ObjectID) (*models.Attendance, error) {
	filter := bson.M{
		"member_id": memberID,
		"exit_time": nil,
	}
	var rec models.Attendance
	err := s.c.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RangeFilter narrows attendance queries. Dates are "2006-01-02";
// empty strings mean unbounded. MemberID nil means all members.
type RangeFilter struct {
	Start    string
	End      string
	MemberID *primitive.ObjectID
}

// InRange returns records whose date satisfies start ≤ date ≤ end,
// newest first. Filtering happens in the query, not client-side.
func (s *Store) InRange(ctx context.Context, f RangeFilter) ([]models.Attendance, error) {
	filter := bson.M{}
	dateRange := bson.M{}
	if f.Start != "" {
		dateRange["$gte"] = f.Start
	}
	if f.End != "" {
		dateRange["$lte"] = f.End
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	if f.MemberID != nil {
		filter["member_id"] = *f.MemberID
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "entry_time", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Attendance
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OnDate returns all records for one calendar date, newest entry first.
func (s *Store) OnDate(ctx context.Context, date string) ([]models.Attendance, error) {
	return s.InRange(ctx, RangeFilter{Start: date, End: date})
}

// CountPresent counts currently-open visits, optionally limited to one
// calendar date.
func (s *Store) CountPresent(ctx context.Context, date string) (int64, error) {
	filter := bson.M{"exit_time": nil}
	if date != "" {
		filter["date"] = date
	}
	return s.c.CountDocuments(ctx, filter)
}
