package user

import (
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// ParseStatus falls back to active for empty or unknown values.
func ParseStatus(s string) Status {
	if st := Status(s); st.Valid() {
		return st
	}
	return StatusActive
}

type (
	// ID is the user's phone number; the store uses it as the document key.
	ID     = string
	Groups struct {
		HasFullAccess bool
	}
	User struct {
		ID             ID
		Name           string
		Firm           string
		City           string
		District       string
		DOB            string
		AppInstallDate string
		Email          string
		Phone          string
		Groups         Groups
		Status         Status

		CreatedAt   time.Time
		LastLoginAt time.Time
	}
	Users []*User
)
