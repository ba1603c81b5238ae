package indexes_test

import (
	"testing"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/indexes"
	"github.com/sanhub4u33-sketch/studyhall/internal/testutil"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll: %v", err)
	}
	// Startup runs this on every boot; re-creating the same named
	// indexes must not error.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}

	names := map[string]bool{}
	for _, coll := range []string{"members", "attendance", "dues", "activities", "admins"} {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("list indexes for %s: %v", coll, err)
		}
		var specs []struct {
			Name string `bson:"name"`
		}
		if err := cur.All(ctx, &specs); err != nil {
			t.Fatalf("decode indexes for %s: %v", coll, err)
		}
		for _, spec := range specs {
			names[spec.Name] = true
		}
	}
	for _, want := range []string{
		"uniq_members_email",
		"uniq_attendance_open_visit",
		"idx_dues_member",
		"idx_activities_ts",
		"uniq_admins_email",
	} {
		if !names[want] {
			t.Errorf("index %s missing", want)
		}
	}
}
