package attendance_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/features/attendance"
	uierrors "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	activitystore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/activity"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/activitylog"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/indexes"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/txn"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
	"github.com/sanhub4u33-sketch/studyhall/internal/testutil"
)

func newTestHandler(t *testing.T) (*attendance.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	logger := zap.NewNop()
	runner := txn.New(db.Client(), logger)
	feed := activitylog.New(activitystore.New(db), logger, activitylog.Config{Mode: "off"})
	svc := lifecycle.New(db, runner, feed, logger)
	return attendance.NewHandler(svc, uierrors.NewErrorLogger(logger), logger), db
}

func TestServeRange_Filters(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	asha := fx.CreateMember(ctx, "Asha Rao", "A-12")
	ravi := fx.CreateMember(ctx, "Ravi Kumar", "B-3")
	fx.CreateAttendance(ctx, asha, "2024-01-05")
	fx.CreateAttendance(ctx, asha, "2024-02-05")
	fx.CreateAttendance(ctx, ravi, "2024-01-10")

	serve := func(target string) []models.Attendance {
		t.Helper()
		req := testutil.NewAuthenticatedRequest("GET", target, testutil.AdminUser())
		rec := httptest.NewRecorder()
		h.ServeRange(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d body %s", target, rec.Code, rec.Body.String())
		}
		var out []models.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("parse: %v", err)
		}
		return out
	}

	if got := serve("/attendance"); len(got) != 3 {
		t.Errorf("unbounded: %d visits, want 3", len(got))
	}
	// Range bounds are inclusive.
	if got := serve("/attendance?start=2024-01-05&end=2024-01-10"); len(got) != 2 {
		t.Errorf("january range: %d visits, want 2", len(got))
	}
	if got := serve("/attendance?member=" + asha.ID.Hex()); len(got) != 2 {
		t.Errorf("member filter: %d visits, want 2", len(got))
	}
}

func TestServeRange_BadInput(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/attendance?start=05-01-2024", testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.ServeRange(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad date: status %d, want 422", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/attendance?member=zzz", testutil.AdminUser())
	rec = httptest.NewRecorder()
	h.ServeRange(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad member id: status %d, want 422", rec.Code)
	}
}

func TestServeToday(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	asha := fx.CreateMember(ctx, "Asha Rao", "A-12")

	req := testutil.NewAuthenticatedRequest("GET", "/attendance/today", testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.ServeToday(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var out []models.Attendance
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("no visits yet, got %d", len(out))
	}

	if _, err := h.Svc.MarkEntry(ctx, asha.ID); err != nil {
		t.Fatalf("MarkEntry: %v", err)
	}

	rec = httptest.NewRecorder()
	h.ServeToday(rec, testutil.NewAuthenticatedRequest("GET", "/attendance/today", testutil.AdminUser()))
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(out) != 1 || out[0].Status != models.AttendancePresent {
		t.Errorf("today = %+v, want one open visit", out)
	}

	// A member only sees their own visits.
	vik := fx.CreateMember(ctx, "Vikram Shah", "B-3")
	rec = httptest.NewRecorder()
	h.ServeToday(rec, testutil.NewAuthenticatedRequest("GET", "/attendance/today", testutil.MemberUser(vik.ID)))
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse member view: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("member sees %d foreign visits", len(out))
	}

	rec = httptest.NewRecorder()
	h.ServeToday(rec, testutil.NewAuthenticatedRequest("GET", "/attendance/today", testutil.MemberUser(asha.ID)))
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse own view: %v", err)
	}
	if len(out) != 1 || out[0].MemberID != asha.ID {
		t.Errorf("own view = %+v, want own open visit", out)
	}
}
