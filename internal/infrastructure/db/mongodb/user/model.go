package user

import (
	"time"
)

type (
	Groups struct {
		HasFullAccess bool `bson:"hasFullAccess"`
	}
	// User mirrors the documents of the users collection. Field names follow
	// the dashboard's existing data, which is camelCase.
	User struct {
		ID             string    `bson:"_id"`
		Name           string    `bson:"name,omitempty"`
		Firm           string    `bson:"firm,omitempty"`
		City           string    `bson:"city,omitempty"`
		District       string    `bson:"district,omitempty"`
		DOB            string    `bson:"dob,omitempty"`
		AppInstallDate string    `bson:"appInstallDate,omitempty"`
		Email          string    `bson:"email,omitempty"`
		Phone          string    `bson:"phone,omitempty"`
		Groups         *Groups   `bson:"groups,omitempty"`
		Status         string    `bson:"status,omitempty"`
		CreatedAt      time.Time `bson:"createdAt"`
		LastLoginAt    time.Time `bson:"lastLoginAt,omitempty"`
	}
	Users []*User
)
