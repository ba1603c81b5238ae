// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/normalize"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

var (
	// ErrNotFound is returned when the referenced member does not exist.
	ErrNotFound = errors.New("member not found")
	// ErrDuplicateEmail is returned when creating or updating a member
	// with an email another member already uses.
	ErrDuplicateEmail = errors.New("a member with this email already exists")

	errBadStatus = errors.New(`status must be "active"|"inactive"`)
)

// Store manages the members collection.
type Store struct {
	c *mongo.Collection
}

// New creates a member Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// Create inserts a new member after normalizing fields. The caller is
// responsible for required-field validation; the store only enforces
// storable invariants (valid status, normalized shapes).
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	m.ID = primitive.NewObjectID()
	m.FullName = normalize.Name(m.FullName)
	m.FullNameCI = text.Fold(m.FullName)
	m.Email = normalize.Email(m.Email)
	m.Phone = normalize.Phone(m.Phone)
	m.Address = normalize.Text(m.Address)
	m.Shift = normalize.Shift(m.Shift)
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	if m.Status != models.MemberActive && m.Status != models.MemberInactive {
		return models.Member{}, errBadStatus
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.JoinDate == "" {
		m.JoinDate = now.Format(models.DateLayout)
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Member{}, ErrDuplicateEmail
		}
		return models.Member{}, err
	}
	return m, nil
}

// GetByID loads a member by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByEmail looks up a member by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	// Query matches folded full name prefixes or exact seat number.
	Query string
	// Status restricts to "active" or "inactive".
	Status string
}

// List returns members sorted by folded name, filtered server-side.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Member, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if q := text.Fold(normalize.Name(f.Query)); q != "" {
		filter["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": "^" + escapeRegex(q)}},
			bson.M{"seat_number": f.Query},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the member fields an admin may change. Nil pointers are
// left untouched (merge semantics).
type Update struct {
	FullName   *string
	Email      *string
	Phone      *string
	Address    *string
	SeatNumber *string
	Shift      *string
	MonthlyFee *int64
	Status     *string
}

// UpdateFields merges the non-nil fields into the member record.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != nil {
		name := normalize.Name(*upd.FullName)
		set["full_name"] = name
		set["full_name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.Address != nil {
		set["address"] = normalize.Text(*upd.Address)
	}
	if upd.SeatNumber != nil {
		set["seat_number"] = *upd.SeatNumber
	}
	if upd.Shift != nil {
		set["shift"] = normalize.Shift(*upd.Shift)
	}
	if upd.MonthlyFee != nil {
		set["monthly_fee"] = *upd.MonthlyFee
	}
	if upd.Status != nil {
		if *upd.Status != models.MemberActive && *upd.Status != models.MemberInactive {
			return errBadStatus
		}
		set["status"] = *upd.Status
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPasswordHash stores a new credential hash for the member.
func (s *Store) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus flips active⇄inactive and returns the new status.
func (s *Store) ToggleStatus(ctx context.Context, id primitive.ObjectID) (string, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := models.MemberActive
	if m.Status == models.MemberActive {
		next = models.MemberInactive
	}
	if err := s.UpdateFields(ctx, id, Update{Status: &next}); err != nil {
		return "", err
	}
	return next, nil
}

// Delete removes the member record. Historical attendance, dues, and
// activities referencing the id are left alone; they carry the
// denormalized name for display.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Counts returns total and active member counts.
func (s *Store) Counts(ctx context.Context) (total, active int64, err error) {
	total, err = s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	active, err = s.c.CountDocuments(ctx, bson.M{"status": models.MemberActive})
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// escapeRegex neutralizes regex metacharacters in a user query so it is
// treated as a literal prefix.
func escapeRegex(s string) string {
	const meta = `\.+*?()|[]{}^$`
	var b []byte
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				b = append(b, '\\')
				break
			}
		}
		b = append(b, s[i])
	}
	return string(b)
}
