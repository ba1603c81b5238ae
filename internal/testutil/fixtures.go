// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts an active member with sensible defaults.
func (f *Fixtures) CreateMember(ctx context.Context, name, seat string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Phone:      "9000000000",
		SeatNumber: seat,
		MonthlyFee: 500,
		Status:     models.MemberActive,
		JoinDate:   now.Format(models.DateLayout),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("insert member fixture: %v", err)
	}
	return m
}

// CreateDue inserts a pending due for the member with the given period
// start date ("2006-01-02").
func (f *Fixtures) CreateDue(ctx context.Context, m models.Member, amount int64, periodStart string) models.Due {
	f.t.Helper()

	start, err := time.Parse(models.DateLayout, periodStart)
	if err != nil {
		f.t.Fatalf("parse period start %q: %v", periodStart, err)
	}
	d := models.Due{
		ID:         primitive.NewObjectID(),
		MemberID:   m.ID,
		MemberName: m.FullName,
		Amount:     amount,
		DueDate:    models.DueDateFor(start),
		Status:     models.DuePending,
		Period:     models.PeriodLabel(start),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("dues").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("insert due fixture: %v", err)
	}
	return d
}

// CreateAttendance inserts a closed visit on the given date with entry
// at 09:00 and exit at 12:00 UTC.
func (f *Fixtures) CreateAttendance(ctx context.Context, m models.Member, date string) models.Attendance {
	f.t.Helper()

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		f.t.Fatalf("parse date %q: %v", date, err)
	}
	entry := day.Add(9 * time.Hour)
	exit := day.Add(12 * time.Hour)
	a := models.Attendance{
		ID:         primitive.NewObjectID(),
		MemberID:   m.ID,
		MemberName: m.FullName,
		Date:       date,
		EntryTime:  entry,
		ExitTime:   &exit,
		Status:     models.AttendanceLeft,
	}
	if _, err := f.db.Collection("attendance").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("insert attendance fixture: %v", err)
	}
	return a
}
