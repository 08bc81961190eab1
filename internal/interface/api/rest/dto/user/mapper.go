package user

import (
	"time"

	"github.com/microcosm-cc/bluemonday"

	"user-admin-dashboard/internal/domain/user"
)

// strict strips every tag; free text from the store never reaches the
// dashboard as markup.
var strict = bluemonday.StrictPolicy()

func clean(s string) string {
	if s == "" {
		return s
	}
	return strict.Sanitize(s)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:             uDomain.ID,
		Name:           clean(uDomain.Name),
		Firm:           clean(uDomain.Firm),
		City:           clean(uDomain.City),
		District:       clean(uDomain.District),
		DOB:            clean(uDomain.DOB),
		AppInstallDate: clean(uDomain.AppInstallDate),
		Email:          clean(uDomain.Email),
		Phone:          clean(uDomain.Phone),
		Groups:         Groups{HasFullAccess: uDomain.Groups.HasFullAccess},
		Status:         string(user.ParseStatus(string(uDomain.Status))),
		CreatedAt:      timePtr(uDomain.CreatedAt),
		LastLoginAt:    timePtr(uDomain.LastLoginAt),
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}
