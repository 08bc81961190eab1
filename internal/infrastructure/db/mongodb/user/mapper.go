package user

import (
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
		Status:         domain.ParseStatus(model.Status),

		CreatedAt:   model.CreatedAt,
		LastLoginAt: model.LastLoginAt,
	}
	if model.Groups != nil {
		u.Groups.HasFullAccess = model.Groups.HasFullAccess
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

func toDBModel(u domain.User) *User {
	return &User{
		ID:             u.ID,
		Name:           u.Name,
		Firm:           u.Firm,
		City:           u.City,
		District:       u.District,
		DOB:            u.DOB,
		AppInstallDate: u.AppInstallDate,
		Email:          u.Email,
		Phone:          u.Phone,
		Groups:         &Groups{HasFullAccess: u.Groups.HasFullAccess},
		Status:         string(domain.ParseStatus(string(u.Status))),
		CreatedAt:      u.CreatedAt,
		LastLoginAt:    u.LastLoginAt,
	}
}
