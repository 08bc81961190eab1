package user

import (
	"time"
)

type (
	Groups struct {
		HasFullAccess bool `json:"has_full_access"`
	}
	User struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Firm           string     `json:"firm"`
		City           string     `json:"city"`
		District       string     `json:"district"`
		DOB            string     `json:"dob"`
		AppInstallDate string     `json:"app_install_date"`
		Email          string     `json:"email"`
		Phone          string     `json:"phone"`
		Groups         Groups     `json:"groups"`
		Status         string     `json:"status"`
		CreatedAt      *time.Time `json:"created_at"`
		LastLoginAt    *time.Time `json:"last_login_at"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}
)
