package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"user-admin-dashboard/internal/domain/user"
)

type seedUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Firm           string    `json:"firm"`
	City           string    `json:"city"`
	District       string    `json:"district"`
	DOB            string    `json:"dob"`
	AppInstallDate string    `json:"appInstallDate"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	HasFullAccess  bool      `json:"hasFullAccess"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (s seedUser) toDomain(now time.Time) user.User {
	u := user.User{
		ID:             s.ID,
		Name:           s.Name,
		Firm:           s.Firm,
		City:           s.City,
		District:       s.District,
		DOB:            s.DOB,
		AppInstallDate: s.AppInstallDate,
		Email:          s.Email,
		Phone:          s.Phone,
		Groups:         user.Groups{HasFullAccess: s.HasFullAccess},
		Status:         user.ParseStatus(s.Status),
		CreatedAt:      s.CreatedAt,
	}
	if u.Phone == "" {
		u.Phone = u.ID
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	return u
}

func builtinUsers(now time.Time) []user.User {
	raw := []seedUser{
		{ID: "+91 98765 43210", Name: "Rahul Sharma", Firm: "Sharma Enterprises", City: "Mumbai", District: "Mumbai"},
		{ID: "+91 87654 32109", Name: "Priya Patel", Firm: "Patel & Co.", City: "Ahmedabad", District: "Ahmedabad"},
		{ID: "+91 76543 21098", Name: "Amit Kumar", Firm: "Kumar Trading", City: "Delhi", District: "New Delhi"},
		{ID: "+91 65432 10987", Name: "Sneha Reddy", Firm: "Reddy Solutions", City: "Hyderabad", District: "Hyderabad"},
		{ID: "+91 54321 09876", Name: "Vikram Singh", Firm: "Singh Industries", City: "Pune", District: "Pune"},
		{ID: "+91 43210 98765", Name: "Anjali Desai", Firm: "Desai Group", City: "Bangalore", District: "Bangalore"},
		{ID: "+91 32109 87654", Name: "Rajesh Verma", Firm: "Verma Exports", City: "Chennai", District: "Chennai"},
		{ID: "+91 21098 76543", Name: "Meera Iyer", Firm: "Iyer Technologies", City: "Kolkata", District: "Kolkata"},
		{ID: "+91 10987 65432", Name: "Arun Malhotra", Firm: "Malhotra Services", City: "Jaipur", District: "Jaipur"},
		{ID: "+91 09876 54321", Name: "Kavita Joshi", Firm: "Joshi Consultants", City: "Lucknow", District: "Lucknow"},
	}

	users := make([]user.User, 0, len(raw))
	for _, s := range raw {
		users = append(users, s.toDomain(now))
	}
	return users
}

func loadFile(path string, now time.Time) ([]user.User, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []seedUser
	if err = json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	users := make([]user.User, 0, len(raw))
	for i, s := range raw {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("user #%d: id is required", i+1)
		}
		users = append(users, s.toDomain(now))
	}
	return users, nil
}

type result struct {
	ok     int
	failed int
}

// seed upserts every user and reports each outcome to w. One failure does
// not stop the rest.
func seed(ctx context.Context, repo user.Repository, users []user.User, w io.Writer) result {
	var res result
	for _, u := range users {
		if err := repo.UpsertUser(ctx, u); err != nil {
			res.failed++
			fmt.Fprintf(w, "FAIL %s (%s): %v\n", u.ID, u.Name, err)
			continue
		}
		res.ok++
		fmt.Fprintf(w, "ok   %s (%s)\n", u.ID, u.Name)
	}
	return res
}
