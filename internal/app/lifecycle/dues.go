// internal/app/lifecycle/dues.go
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	duestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/dues"
	memberstore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/members"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// CreateDue opens a billing period for the member by hand, outside the
// automatic join/payment rollover. periodStart empty means today.
func (s *Service) CreateDue(ctx context.Context, memberID primitive.ObjectID, amount int64, periodStart string) (*models.Due, error) {
	if amount <= 0 {
		return nil, ErrBadFee
	}
	m, err := s.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	if periodStart != "" {
		start, err = time.Parse(models.DateLayout, periodStart)
		if err != nil {
			return nil, ErrBadDate
		}
	}

	due, err := s.Dues.Create(ctx, m.ID, m.FullName, amount, start)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

// MarkDuePaid settles a pending due and rolls the next billing period
// forward from the payment date: the new due is pending, for the
// member's current fee, due thirty days after payment. Settlement and
// rollover happen in one transaction; paying twice loses the race to
// the conditional update and returns duestore.ErrAlreadyPaid.
func (s *Service) MarkDuePaid(ctx context.Context, dueID primitive.ObjectID) (paid, next *models.Due, err error) {
	when := s.now()
	receipt := uuid.NewString()

	err = s.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.Dues.MarkPaid(ctx, dueID, when, receipt)
		if err != nil {
			return err
		}
		paid = p

		// Rollover bills at the member's current fee. If the member is
		// gone, settle without opening a new period.
		amount := p.Amount
		m, err := s.Members.GetByID(ctx, p.MemberID)
		switch {
		case err == nil:
			amount = m.MonthlyFee
		case errors.Is(err, memberstore.ErrNotFound):
			s.Log.Debug("paid due for removed member; skipping rollover")
			s.Activity.Payment(ctx, p.MemberID, p.MemberName, p.Amount)
			return nil
		default:
			return err
		}

		n, err := s.Dues.Create(ctx, p.MemberID, m.FullName, amount, when)
		if err != nil {
			return err
		}
		next = &n

		s.Activity.Payment(ctx, p.MemberID, m.FullName, p.Amount)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return paid, next, nil
}

// ListDues returns dues, optionally filtered by status and member, with
// the overdue status derived against the current date.
func (s *Service) ListDues(ctx context.Context, status string, memberID *primitive.ObjectID) ([]models.Due, error) {
	f := duestore.ListFilter{MemberID: memberID}
	// Overdue is derived, not stored; filter on pending and narrow
	// after the read.
	wantOverdue := status == models.DueOverdue
	if wantOverdue {
		f.Status = models.DuePending
	} else {
		f.Status = status
	}

	dues, err := s.Dues.List(ctx, f)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := dues[:0]
	for i := range dues {
		dues[i].Status = dues[i].EffectiveStatus(now)
		if wantOverdue && dues[i].Status != models.DueOverdue {
			continue
		}
		out = append(out, dues[i])
	}
	return out, nil
}

// MemberDues lists one member's billing history, newest first.
func (s *Service) MemberDues(ctx context.Context, memberID primitive.ObjectID) ([]models.Due, error) {
	return s.ListDues(ctx, "", &memberID)
}
