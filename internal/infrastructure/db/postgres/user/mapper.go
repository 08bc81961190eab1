package user

import (
	"time"

	domain "user-admin-dashboard/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:             model.ID,
		Name:           model.Name,
		Firm:           model.Firm,
		City:           model.City,
		District:       model.District,
		DOB:            model.DOB,
		AppInstallDate: model.AppInstallDate,
		Email:          model.Email,
		Phone:          model.Phone,
		Groups:         domain.Groups{HasFullAccess: model.HasFullAccess},
		Status:         domain.ParseStatus(model.Status),

		CreatedAt: model.CreatedAt,
	}
	if model.LastLoginAt != nil {
		u.LastLoginAt = *model.LastLoginAt
	}

	return u
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func lastLoginArg(u domain.User) *time.Time {
	if u.LastLoginAt.IsZero() {
		return nil
	}
	t := u.LastLoginAt
	return &t
}
