// internal/app/lifecycle/attendance.go
package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	attendancestore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/attendance"
	"github.com/sanhub4u33-sketch/studyhall/internal/domain/models"
)

// MarkEntry opens a visit for the member. The member must exist and be
// active; a second entry while a visit is open returns
// attendancestore.ErrAlreadyPresent.
func (s *Service) MarkEntry(ctx context.Context, memberID primitive.ObjectID) (*models.Attendance, error) {
	m, err := s.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, ErrMemberFrozen
	}

	rec, err := s.Attendance.Open(ctx, m.ID, m.FullName, s.now())
	if err != nil {
		return nil, err
	}
	s.Activity.Entry(ctx, m.ID, m.FullName)
	return &rec, nil
}

// MarkExit closes the member's open visit. The visit's recorded date
// may be earlier than today; an entry that spans midnight still closes
// against its original record. Exit is allowed for inactive members so
// a deactivation mid-visit still closes the record cleanly.
func (s *Service) MarkExit(ctx context.Context, memberID primitive.ObjectID) (*models.Attendance, error) {
	now := s.now()
	open, err := s.Attendance.OpenVisit(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, attendancestore.ErrNoOpenVisit
	}

	closed, err := s.Attendance.Close(ctx, open.ID, memberID, now)
	if err != nil {
		return nil, err
	}
	s.Activity.Exit(ctx, closed.MemberID, closed.MemberName)
	return closed, nil
}

// TodayAttendance lists all visits for the current calendar date.
func (s *Service) TodayAttendance(ctx context.Context) ([]models.Attendance, error) {
	return s.Attendance.OnDate(ctx, s.now().Format(models.DateLayout))
}

// AttendanceInRange lists visits in a date range, optionally for one
// member. Empty bounds mean unbounded.
func (s *Service) AttendanceInRange(ctx context.Context, start, end string, memberID *primitive.ObjectID) ([]models.Attendance, error) {
	if err := checkDate(start); err != nil {
		return nil, err
	}
	if err := checkDate(end); err != nil {
		return nil, err
	}
	return s.Attendance.InRange(ctx, attendancestore.RangeFilter{
		Start:    start,
		End:      end,
		MemberID: memberID,
	})
}

// MemberAttendance lists one member's visit history, newest first.
func (s *Service) MemberAttendance(ctx context.Context, memberID primitive.ObjectID, start, end string) ([]models.Attendance, error) {
	return s.AttendanceInRange(ctx, start, end, &memberID)
}
