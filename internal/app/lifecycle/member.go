// internal/app/lifecycle/member.go
package lifecycle

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/normalize"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// NewMemberInput carries the admin-supplied registration fields.
type NewMemberInput struct {
	FullName   string
	Email      string
	Phone      string
	Address    string
	SeatNumber string
	Shift      string
	MonthlyFee int64

	// JoinDate is "2006-01-02"; empty means today. The first billing
	// period starts on the join date.
	JoinDate string

	// Password, when set, enables member-portal login.
	Password string
}

func (in *NewMemberInput) validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(in.Phone) == "" {
		return ErrPhoneRequired
	}
	if strings.TrimSpace(in.SeatNumber) == "" {
		return ErrSeatRequired
	}
	if in.MonthlyFee <= 0 {
		return ErrBadFee
	}
	if in.JoinDate != "" {
		if _, err := time.Parse(models.DateLayout, in.JoinDate); err != nil {
			return ErrBadDate
		}
	}
	return nil
}

// AddMember registers a member, opens their first billing period, and
// records the join on the activity feed. Member and due are written in
// one transaction.
func (s *Service) AddMember(ctx context.Context, in NewMemberInput) (*models.Member, *models.Due, error) {
	if in.MonthlyFee == 0 && s.DefaultFee > 0 {
		in.MonthlyFee = s.DefaultFee
	}
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	m := models.Member{
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		SeatNumber: strings.TrimSpace(in.SeatNumber),
		Shift:      in.Shift,
		MonthlyFee: in.MonthlyFee,
		JoinDate:   in.JoinDate,
	}
	if m.JoinDate == "" {
		m.JoinDate = s.now().Format(models.DateLayout)
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, err
		}
		m.PasswordHash = string(hash)
	}

	periodStart, err := time.Parse(models.DateLayout, m.JoinDate)
	if err != nil {
		return nil, nil, ErrBadDate
	}

	var created models.Member
	var firstDue models.Due
	err = s.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Members.Create(ctx, m)
		if err != nil {
			return err
		}
		firstDue, err = s.Dues.Create(ctx, created.ID, created.FullName, created.MonthlyFee, periodStart)
		if err != nil {
			return err
		}
		// Feed entry is best-effort; a dropped activity never aborts
		// the registration.
		s.Activity.MemberJoined(ctx, created.ID, created.FullName)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &created, &firstDue, nil
}

// UpdateMemberInput mirrors memberstore.Update; nil pointers leave the
// field untouched.
type UpdateMemberInput = memberstore.Update

// UpdateMember edits member fields. Edits do not appear on the activity
// feed; only lifecycle events (join, remove, entry, exit, payment) do.
func (s *Service) UpdateMember(ctx context.Context, id primitive.ObjectID, upd UpdateMemberInput) (*models.Member, error) {
	if upd.FullName != nil && strings.TrimSpace(*upd.FullName) == "" {
		return nil, ErrNameRequired
	}
	if upd.MonthlyFee != nil && *upd.MonthlyFee <= 0 {
		return nil, ErrBadFee
	}
	if err := s.Members.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.Members.GetByID(ctx, id)
}

// SetMemberPassword replaces the member's portal credential.
func (s *Service) SetMemberPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrBadPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Members.SetPasswordHash(ctx, id, string(hash))
}

// ToggleMemberStatus flips active⇄inactive and returns the new status.
// An inactive member keeps their records but cannot log in or enter.
func (s *Service) ToggleMemberStatus(ctx context.Context, id primitive.ObjectID) (string, error) {
	return s.Members.ToggleStatus(ctx, id)
}

// RemoveMember deletes the member record and notes the removal on the
// feed. Attendance, dues, and past activities survive with the
// denormalized name, so history stays readable.
func (s *Service) RemoveMember(ctx context.Context, id primitive.ObjectID) error {
	m, err := s.Members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Members.Delete(ctx, id); err != nil {
		return err
	}
	s.Activity.MemberRemoved(ctx, m.ID, m.FullName)
	return nil
}

// GetMember loads one member.
func (s *Service) GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return s.Members.GetByID(ctx, id)
}

// ListMembers returns members filtered by name/seat query and status,
// server-side.
func (s *Service) ListMembers(ctx context.Context, query, status string) ([]models.Member, error) {
	return s.Members.List(ctx, memberstore.ListFilter{
		Query:  normalize.Name(query),
		Status: status,
	})
}
