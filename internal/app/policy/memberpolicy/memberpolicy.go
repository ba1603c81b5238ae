// internal/app/policy/memberpolicy/memberpolicy.go

// Package memberpolicy decides who may see and touch member data.
//
// Rules:
//   - Admins can view and manage every member.
//   - A member can view their own profile, attendance, and dues, and
//     mark their own entry and exit. Nothing else.
//   - Anonymous requests can do nothing; the session middleware rejects
//     them before these checks run.
package memberpolicy

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
)

// CanViewMember reports whether the request user may read the given
// member's profile and history.
func CanViewMember(r *http.Request, memberID primitive.ObjectID) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return u.Role == auth.RoleMember && u.ID == memberID.Hex()
}

// CanMarkAttendance reports whether the request user may mark entry or
// exit for the given member. Same shape as viewing: admins for anyone,
// members for themselves.
func CanMarkAttendance(r *http.Request, memberID primitive.ObjectID) bool {
	return CanViewMember(r, memberID)
}

// CanManageMembers reports whether the request user may create, edit,
// or remove members and settle dues. Admin only.
func CanManageMembers(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsAdmin()
}
