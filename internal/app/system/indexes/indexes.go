// internal/app/system/indexes/indexes.go

// Package indexes creates the collection indexes at startup. Each
// ensure function is idempotent; errors are aggregated so every problem
// is visible and startup can fail fast.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// EnsureAll is called at startup.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureAttendance(ctx, db); err != nil {
		problems = append(problems, "attendance: "+err.Error())
	}
	if err := ensureDues(ctx, db); err != nil {
		problems = append(problems, "dues: "+err.Error())
	}
	if err := ensureActivities(ctx, db); err != nil {
		problems = append(problems, "activities: "+err.Error())
	}
	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	idx := []mongo.IndexModel{
		// Email uniqueness across members; sparse so members without an
		// email (phone-only signups) don't collide on "".
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_members_email").
				SetUnique(true).
				SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_members_name"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_members_status"),
		},
	}
	_, err := db.Collection("members").Indexes().CreateMany(ctx, idx)
	return err
}

func ensureAttendance(ctx context.Context, db *mongo.Database) error {
	idx := []mongo.IndexModel{
		// The open-visit guard: at most one record per member with
		// status "present". Turns the entry check-then-write race into
		// a duplicate-key error at the store boundary.
		{
			Keys: bson.D{{Key: "member_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_attendance_open_visit").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AttendancePresent}),
		},
		{
			Keys: bson.D{
				{Key: "date", Value: -1},
				{Key: "entry_time", Value: -1},
			},
			Options: options.Index().SetName("idx_attendance_date"),
		},
		{
			Keys: bson.D{
				{Key: "member_id", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("idx_attendance_member_date"),
		},
	}
	_, err := db.Collection("attendance").Indexes().CreateMany(ctx, idx)
	return err
}

func ensureDues(ctx context.Context, db *mongo.Database) error {
	idx := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "member_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_dues_member"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().SetName("idx_dues_status_duedate"),
		},
		{
			Keys:    bson.D{{Key: "paid_date", Value: -1}},
			Options: options.Index().SetName("idx_dues_paid_date"),
		},
	}
	_, err := db.Collection("dues").Indexes().CreateMany(ctx, idx)
	return err
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activities_ts"),
		},
		{
			Keys: bson.D{
				{Key: "member_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_activities_member"),
		},
	}
	_, err := db.Collection("activities").Indexes().CreateMany(ctx, idx)
	return err
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	idx := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_admins_email").
				SetUnique(true),
		},
	}
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, idx)
	return err
}
