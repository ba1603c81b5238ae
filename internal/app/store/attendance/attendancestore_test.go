package attendancestore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	attendancestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/attendance"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/indexes"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
	"github.com/sanhub4u33-sketch/studyhall/internal/testutil"
)

func newStore(t *testing.T) *attendancestore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return attendancestore.New(db)
}

func at(day string, hour int) time.Time {
	d, _ := time.Parse(models.DateLayout, day)
	return d.Add(time.Duration(hour) * time.Hour).UTC()
}

func TestOpen_RejectsSecondOpenVisit(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	member := primitive.NewObjectID()

	rec, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 9))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if rec.Status != models.AttendancePresent || rec.ExitTime != nil {
		t.Errorf("open record = %+v", rec)
	}
	if rec.Date != "2024-01-05" {
		t.Errorf("date = %q", rec.Date)
	}

	if _, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 10)); !errors.Is(err, attendancestore.ErrAlreadyPresent) {
		t.Fatalf("second open err = %v, want ErrAlreadyPresent", err)
	}

	// Another member is unaffected by the first one's open visit.
	if _, err := s.Open(ctx, primitive.NewObjectID(), "Vikram Shah", at("2024-01-05", 9)); err != nil {
		t.Fatalf("open for other member: %v", err)
	}
}

func TestClose_Conditional(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	member := primitive.NewObjectID()

	rec, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 9))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Foreign member id does not match the open record.
	if _, err := s.Close(ctx, rec.ID, primitive.NewObjectID(), at("2024-01-05", 12)); !errors.Is(err, attendancestore.ErrNoOpenVisit) {
		t.Fatalf("foreign close err = %v, want ErrNoOpenVisit", err)
	}

	closed, err := s.Close(ctx, rec.ID, member, at("2024-01-05", 12))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != models.AttendanceLeft || closed.ExitTime == nil {
		t.Errorf("closed record = %+v", closed)
	}
	if got := closed.Duration(); got != 3*time.Hour {
		t.Errorf("duration = %v, want 3h", got)
	}

	if _, err := s.Close(ctx, rec.ID, member, at("2024-01-05", 13)); !errors.Is(err, attendancestore.ErrNoOpenVisit) {
		t.Fatalf("re-close err = %v, want ErrNoOpenVisit", err)
	}

	// With the visit closed the member may enter again the same day.
	if _, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 14)); err != nil {
		t.Fatalf("re-open: %v", err)
	}
}

func TestOpenVisit(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	member := primitive.NewObjectID()

	got, err := s.OpenVisit(ctx, member)
	if err != nil {
		t.Fatalf("open visit: %v", err)
	}
	if got != nil {
		t.Fatalf("open visit = %+v, want nil", got)
	}

	rec, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 9))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err = s.OpenVisit(ctx, member)
	if err != nil || got == nil || got.ID != rec.ID {
		t.Fatalf("open visit = %+v, %v", got, err)
	}

	if _, err := s.Close(ctx, rec.ID, member, at("2024-01-05", 12)); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got, _ := s.OpenVisit(ctx, member); got != nil {
		t.Errorf("open visit after close = %+v", got)
	}
}

func TestOpenVisit_SpansMidnight(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	member := primitive.NewObjectID()

	rec, err := s.Open(ctx, member, "Asha Rao", at("2024-01-05", 23))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Yesterday's open record is still the member's open visit, and a
	// fresh entry is still rejected until it is closed.
	got, err := s.OpenVisit(ctx, member)
	if err != nil || got == nil || got.ID != rec.ID {
		t.Fatalf("open visit = %+v, %v", got, err)
	}
	if _, err := s.Open(ctx, member, "Asha Rao", at("2024-01-06", 9)); !errors.Is(err, attendancestore.ErrAlreadyPresent) {
		t.Fatalf("open with stale visit err = %v, want ErrAlreadyPresent", err)
	}

	closed, err := s.Close(ctx, rec.ID, member, at("2024-01-06", 1))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Date != "2024-01-05" {
		t.Errorf("closed date = %q, want entry date", closed.Date)
	}
	if got := closed.Duration(); got != 2*time.Hour {
		t.Errorf("duration = %v, want 2h", got)
	}

	if _, err := s.Open(ctx, member, "Asha Rao", at("2024-01-06", 9)); err != nil {
		t.Fatalf("open after close: %v", err)
	}
}

func TestInRangeAndCounts(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	asha := primitive.NewObjectID()
	vik := primitive.NewObjectID()

	open := func(member primitive.ObjectID, name, day string) models.Attendance {
		rec, err := s.Open(ctx, member, name, at(day, 9))
		if err != nil {
			t.Fatalf("open %s %s: %v", name, day, err)
		}
		return rec
	}
	closeVisit := func(rec models.Attendance, day string) {
		if _, err := s.Close(ctx, rec.ID, rec.MemberID, at(day, 12)); err != nil {
			t.Fatalf("close %s: %v", day, err)
		}
	}

	v1 := open(asha, "Asha Rao", "2024-01-03")
	closeVisit(v1, "2024-01-03")
	v2 := open(asha, "Asha Rao", "2024-01-05")
	closeVisit(v2, "2024-01-05")
	open(asha, "Asha Rao", "2024-01-09")
	open(vik, "Vikram Shah", "2024-01-09")

	all, err := s.InRange(ctx, attendancestore.RangeFilter{})
	if err != nil {
		t.Fatalf("unbounded: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("unbounded len = %d, want 4", len(all))
	}
	if all[0].Date != "2024-01-09" {
		t.Errorf("sort: first date = %q, want newest", all[0].Date)
	}

	ranged, err := s.InRange(ctx, attendancestore.RangeFilter{Start: "2024-01-04", End: "2024-01-05"})
	if err != nil {
		t.Fatalf("ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != v2.ID {
		t.Errorf("ranged = %v", ranged)
	}

	mine, err := s.InRange(ctx, attendancestore.RangeFilter{MemberID: &asha})
	if err != nil {
		t.Fatalf("by member: %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("by member len = %d, want 3", len(mine))
	}

	today, err := s.OnDate(ctx, "2024-01-09")
	if err != nil {
		t.Fatalf("on date: %v", err)
	}
	if len(today) != 2 {
		t.Errorf("on date len = %d, want 2", len(today))
	}

	present, err := s.CountPresent(ctx, "2024-01-09")
	if err != nil {
		t.Fatalf("count present: %v", err)
	}
	if present != 2 {
		t.Errorf("present = %d, want 2", present)
	}
	allOpen, err := s.CountPresent(ctx, "")
	if err != nil {
		t.Fatalf("count all open: %v", err)
	}
	if allOpen != 2 {
		t.Errorf("all open = %d, want 2", allOpen)
	}
}
