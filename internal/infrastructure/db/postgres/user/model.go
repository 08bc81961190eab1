package user

import (
	"time"
)

type (
	User struct {
		ID             string
		Name           string
		Firm           string
		City           string
		District       string
		DOB            string
		AppInstallDate string
		Email          string
		Phone          string
		HasFullAccess  bool
		Status         string

		CreatedAt   time.Time
		LastLoginAt *time.Time
	}
	Users []*User
)
