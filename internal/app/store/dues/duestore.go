// internal/app/store/dues/duestore.go
package duestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

var (
	// ErrNotFound is returned when the referenced due does not exist.
	ErrNotFound = errors.New("due not found")
	// ErrAlreadyPaid is returned when marking a due that is not pending.
	// The update is conditional on status, so a double-click on "mark
	// paid" cannot pay twice or roll over twice.
	ErrAlreadyPaid = errors.New("due is not pending")
)

// Store manages the dues collection.
type Store struct {
	c *mongo.Collection
}

// New creates a dues Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("dues")}
}

// Create inserts a pending due for a billing period starting at
// periodStart: dueDate = periodStart + 30 days, period label from the
// start date's month and year.
func (s *Store) Create(ctx context.Context, memberID primitive.ObjectID, memberName string, amount int64, periodStart time.Time) (models.Due, error) {
	due := models.Due{
		ID:         primitive.NewObjectID(),
		MemberID:   memberID,
		MemberName: memberName,
		Amount:     amount,
		DueDate:    models.DueDateFor(periodStart),
		PaidDate:   nil,
		Status:     models.DuePending,
		Period:     models.PeriodLabel(periodStart),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, due); err != nil {
		return models.Due{}, err
	}
	return due, nil
}

// GetByID loads a due by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Due, error) {
	var d models.Due
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// MarkPaid sets status=paid, the paid date, and the receipt number.
// The update matches only a pending due; anything else returns
// ErrAlreadyPaid (or ErrNotFound if the id is unknown).
func (s *Store) MarkPaid(ctx context.Context, id primitive.ObjectID, when time.Time, receiptNo string) (*models.Due, error) {
	filter := bson.M{"_id": id, "status": models.DuePending}
	update := bson.M{"$set": bson.M{
		"status":     models.DuePaid,
		"paid_date":  when,
		"receipt_no": receiptNo,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Due
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&d)
	if err == mongo.ErrNoDocuments {
		// Distinguish unknown id from already-paid.
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyPaid
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status   string
	MemberID *primitive.ObjectID
}

// List returns dues newest first, filtered server-side.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Due, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.MemberID != nil {
		filter["member_id"] = *f.MemberID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Due
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingTotals returns the count and amount sum of pending dues,
// computed by the server.
func (s *Store) PendingTotals(ctx context.Context) (count int64, total int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.DuePending}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$amount"},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var res []struct {
		Count int64 `bson:"count"`
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &res); err != nil {
		return 0, 0, err
	}
	if len(res) == 0 {
		return 0, 0, nil
	}
	return res[0].Count, res[0].Total, nil
}

// CollectedBetween sums amounts of dues paid in [start, end).
func (s *Store) CollectedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.DuePaid,
			"paid_date": bson.M{"$gte": start, "$lt": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var res []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &res); err != nil {
		return 0, err
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Total, nil
}
