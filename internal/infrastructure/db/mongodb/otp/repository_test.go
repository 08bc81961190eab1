package otp_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-admin-dashboard/internal/domain/otp"
	"user-admin-dashboard/internal/infrastructure/db/mongodb"
	otpDB "user-admin-dashboard/internal/infrastructure/db/mongodb/otp"
)

func TestRepository_ConsumeRequest(t *testing.T) {
	db := mongodb.SetupTestDB(t)
	ctx := context.Background()
	require.NoError(t, otpDB.EnsureIndexes(ctx, db))
	repo := otpDB.NewRepository(db)

	req := domain.Request{
		ID:         uuid.New(),
		UserPhone:  "+911111111111",
		AdminPhone: "+919999999999",
		OTP:        "482913",
		ExpiresAt:  time.Now().Add(10 * time.Minute).UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.CreateRequest(ctx, req))

	miss, err := repo.ConsumeRequest(ctx, req.UserPhone, "+910000000000", req.OTP)
	require.NoError(t, err)
	assert.Nil(t, miss)

	got, err := repo.ConsumeRequest(ctx, req.UserPhone, req.AdminPhone, req.OTP)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, req.ID, got.ID)
	assert.True(t, req.ExpiresAt.Equal(got.ExpiresAt))

	again, err := repo.ConsumeRequest(ctx, req.UserPhone, req.AdminPhone, req.OTP)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestRepository_FetchLatestByAdmin(t *testing.T) {
	db := mongodb.SetupTestDB(t)
	ctx := context.Background()
	repo := otpDB.NewRepository(db)
	admin := "+919999999999"
	now := time.Now()

	require.NoError(t, repo.CreateRequest(ctx, domain.Request{AdminPhone: admin, OTP: "111111", CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.CreateRequest(ctx, domain.Request{AdminPhone: admin, OTP: "222222", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}))

	latest, err := repo.FetchLatestByAdmin(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "222222", latest.OTP)

	none, err := repo.FetchLatestByAdmin(ctx, "+910000000000")
	require.NoError(t, err)
	assert.Nil(t, none)
}
