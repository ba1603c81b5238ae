// internal/app/lifecycle/stats.go
package lifecycle

import (
	"context"
	"time"

	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// AdminStats is the dashboard rollup. All numbers are computed
// server-side; amounts are whole rupees.
type AdminStats struct {
	TotalMembers       int64 `json:"total_members"`
	ActiveMembers      int64 `json:"active_members"`
	PresentToday       int64 `json:"present_today"`
	PendingDues        int64 `json:"pending_dues"`
	TotalDuesAmount    int64 `json:"total_dues_amount"`
	CollectedThisMonth int64 `json:"collected_this_month"`
}

// Stats computes the admin dashboard numbers. "This month" is the
// calendar month containing the current date.
func (s *Service) Stats(ctx context.Context) (*AdminStats, error) {
	var st AdminStats

	total, active, err := s.Members.Counts(ctx)
	if err != nil {
		return nil, err
	}
	st.TotalMembers = total
	st.ActiveMembers = active

	now := s.now()
	present, err := s.Attendance.CountPresent(ctx, now.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	st.PresentToday = present

	pendingCount, pendingTotal, err := s.Dues.PendingTotals(ctx)
	if err != nil {
		return nil, err
	}
	st.PendingDues = pendingCount
	st.TotalDuesAmount = pendingTotal

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	collected, err := s.Dues.CollectedBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	st.CollectedThisMonth = collected

	return &st, nil
}
