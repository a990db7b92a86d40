package jsonview

import "github.com/veioenza/seqr/internal/models"

// User keeps the account field names of the auth backend, hence snake_case.
func User(u *models.User) Object {
	return Object{
		"id":          u.ID,
		"username":    u.Username,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"is_staff":    u.IsStaff,
		"is_active":   u.IsActive,
		"date_joined": u.DateJoined,
		"last_login":  timeOrNil(u.LastLogin),
	}
}
