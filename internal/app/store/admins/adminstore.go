// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/normalize"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// ErrNotFound is returned when no admin has the given email.
var ErrNotFound = errors.New("admin not found")

// Store manages the admins collection — the role table that replaces a
// hardcoded owner email.
type Store struct {
	c *mongo.Collection
}

// New creates an admin Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// GetByEmail looks up an admin by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Upsert creates or refreshes an admin account keyed by email. Used by
// the startup bootstrap so the configured administrator always exists.
func (s *Store) Upsert(ctx context.Context, fullName, email, passwordHash string) error {
	email = normalize.Email(email)
	set := bson.M{
		"full_name": normalize.Name(fullName),
		"email":     email,
	}
	if passwordHash != "" {
		set["password_hash"] = passwordHash
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"email": email}, update, opts); err != nil {
		if wafflemongo.IsDup(err) {
			return nil
		}
		return err
	}
	return nil
}
