package auth

import "github.com/spec-kit/form-response-service/internal/domain"

// CanView reports whether the user may read a form response and its thread:
// admins, the creator, and the current assignee.
func CanView(user *domain.User, response *domain.FormResponse) bool {
	if user == nil || response == nil {
		return false
	}
	if user.IsAdmin || response.CreatedByID == user.ID {
		return true
	}
	return response.AssignedUserID != nil && *response.AssignedUserID == user.ID
}

// CanEdit reports whether the user may change status or assignment: admins
// and the creator only. An assignee can view and comment but not edit; the
// asymmetry is intentional.
func CanEdit(user *domain.User, response *domain.FormResponse) bool {
	if user == nil || response == nil {
		return false
	}
	return user.IsAdmin || response.CreatedByID == user.ID
}
