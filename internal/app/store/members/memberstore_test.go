package memberstore_test

import (
	"errors"
	"testing"

	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/indexes"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
	"github.com/sanhub4u33-sketch/studyhall/internal/testutil"
)

func newStore(t *testing.T) *memberstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return memberstore.New(db)
}

func TestCreate_Normalizes(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := s.Create(ctx, models.Member{
		FullName:   "  Asha   Rao ",
		Email:      " Asha@Example.Com ",
		Phone:      "+91 98765-43210",
		SeatNumber: "A-12",
		MonthlyFee: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.FullName != "Asha Rao" {
		t.Errorf("full name = %q", m.FullName)
	}
	if m.Email != "asha@example.com" {
		t.Errorf("email = %q", m.Email)
	}
	if m.Phone != "+919876543210" {
		t.Errorf("phone = %q", m.Phone)
	}
	if m.Status != models.MemberActive {
		t.Errorf("status = %q, want active default", m.Status)
	}
	if m.JoinDate == "" {
		t.Error("join date not defaulted")
	}

	got, err := s.GetByEmail(ctx, "ASHA@example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != m.ID {
		t.Error("email lookup returned different member")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := models.Member{FullName: "Asha Rao", Email: "asha@example.com", Phone: "9000000001", SeatNumber: "A-1", MonthlyFee: 500}
	if _, err := s.Create(ctx, base); err != nil {
		t.Fatalf("first create: %v", err)
	}
	dup := base
	dup.FullName = "Other Asha"
	dup.SeatNumber = "A-2"
	if _, err := s.Create(ctx, dup); !errors.Is(err, memberstore.ErrDuplicateEmail) {
		t.Fatalf("duplicate create err = %v, want ErrDuplicateEmail", err)
	}

	// Members without email never collide (sparse index).
	noMail := models.Member{FullName: "Quiet One", Phone: "9000000002", SeatNumber: "B-1", MonthlyFee: 400}
	if _, err := s.Create(ctx, noMail); err != nil {
		t.Fatalf("create without email: %v", err)
	}
	noMail.FullName = "Quieter One"
	noMail.SeatNumber = "B-2"
	if _, err := s.Create(ctx, noMail); err != nil {
		t.Fatalf("second create without email: %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, m := range []models.Member{
		{FullName: "Asha Rao", Phone: "1", SeatNumber: "A-1", MonthlyFee: 500},
		{FullName: "Ashok Kumar", Phone: "2", SeatNumber: "A-2", MonthlyFee: 500},
		{FullName: "Vikram Shah", Phone: "3", SeatNumber: "B-1", MonthlyFee: 500, Status: models.MemberInactive},
	} {
		if _, err := s.Create(ctx, m); err != nil {
			t.Fatalf("seed %s: %v", m.FullName, err)
		}
	}

	all, err := s.List(ctx, memberstore.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].FullName != "Asha Rao" || all[2].FullName != "Vikram Shah" {
		t.Errorf("sort order: %q .. %q", all[0].FullName, all[2].FullName)
	}

	byName, err := s.List(ctx, memberstore.ListFilter{Query: "ash"})
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("name prefix matched %d, want 2", len(byName))
	}

	bySeat, err := s.List(ctx, memberstore.ListFilter{Query: "B-1"})
	if err != nil {
		t.Fatalf("list seat: %v", err)
	}
	if len(bySeat) != 1 || bySeat[0].FullName != "Vikram Shah" {
		t.Errorf("seat query = %v", bySeat)
	}

	active, err := s.List(ctx, memberstore.ListFilter{Status: models.MemberActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active = %d, want 2", len(active))
	}
}

func TestUpdateFields_Merges(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := s.Create(ctx, models.Member{FullName: "Asha Rao", Phone: "9000000001", SeatNumber: "A-1", MonthlyFee: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seat := "C-7"
	fee := int64(600)
	if err := s.UpdateFields(ctx, m.ID, memberstore.Update{SeatNumber: &seat, MonthlyFee: &fee}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SeatNumber != "C-7" || got.MonthlyFee != 600 {
		t.Errorf("merged = seat %q fee %d", got.SeatNumber, got.MonthlyFee)
	}
	if got.FullName != "Asha Rao" || got.Phone != "9000000001" {
		t.Errorf("untouched fields changed: %q %q", got.FullName, got.Phone)
	}

	bad := "gone"
	if err := s.UpdateFields(ctx, m.ID, memberstore.Update{Status: &bad}); err == nil {
		t.Error("bad status accepted")
	}
}

func TestToggleStatusAndCounts(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := s.Create(ctx, models.Member{FullName: "Asha Rao", Phone: "9000000001", SeatNumber: "A-1", MonthlyFee: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	next, err := s.ToggleStatus(ctx, m.ID)
	if err != nil || next != models.MemberInactive {
		t.Fatalf("toggle = %q, %v", next, err)
	}
	total, active, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 1 || active != 0 {
		t.Errorf("counts = %d/%d, want 1/0", total, active)
	}

	next, err = s.ToggleStatus(ctx, m.ID)
	if err != nil || next != models.MemberActive {
		t.Fatalf("toggle back = %q, %v", next, err)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := s.Create(ctx, models.Member{FullName: "Asha Rao", Phone: "9000000001", SeatNumber: "A-1", MonthlyFee: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, m.ID); !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByID(ctx, m.ID); !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}
