// Package db opens the configured user store.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-admin-dashboard/config"
	"user-admin-dashboard/internal/domain/otp"
	"user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/db/memory"
	"user-admin-dashboard/internal/infrastructure/db/mongodb"
	mongoOTP "user-admin-dashboard/internal/infrastructure/db/mongodb/otp"
	mongoUser "user-admin-dashboard/internal/infrastructure/db/mongodb/user"
	"user-admin-dashboard/internal/infrastructure/db/postgres"
	pgOTP "user-admin-dashboard/internal/infrastructure/db/postgres/otp"
	pgUser "user-admin-dashboard/internal/infrastructure/db/postgres/user"
	"user-admin-dashboard/internal/infrastructure/timeouts"
)

// Store bundles the repositories of one backend. Both are bounded by the
// configured timeout policy.
type Store struct {
	Users    user.Repository
	Requests otp.Repository
	close    func(ctx context.Context)
}

func (s *Store) Close(ctx context.Context) {
	if s != nil && s.close != nil {
		s.close(ctx)
	}
}

func Open(ctx context.Context, logger *zap.Logger, cfg config.Config) (*Store, error) {
	var (
		users    user.Repository
		requests otp.Repository
		closeFn  func(ctx context.Context)
	)

	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, database, err := mongodb.New(ctx, logger, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		if err = mongoUser.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		if err = mongoOTP.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		users = mongoUser.NewRepository(database)
		requests = mongoOTP.NewRepository(database)
		closeFn = func(ctx context.Context) { _ = client.Disconnect(ctx) }

	case config.StorePostgres:
		dsn, err := cfg.DBDSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.New(ctx, logger, dsn)
		if err != nil {
			return nil, err
		}
		if err = postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		users = pgUser.NewRepository(pool)
		requests = pgOTP.NewRepository(pool)
		closeFn = func(context.Context) { pool.Close() }

	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		users = memory.NewUserRepository()
		requests = memory.NewOTPRepository()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	policy := timeouts.Policy{
		List:     cfg.Timeouts.List,
		Mutation: cfg.Timeouts.Mutation,
		OTP:      cfg.Timeouts.OTP,
	}

	return &Store{
		Users:    timeouts.Users(users, policy),
		Requests: timeouts.Requests(requests, policy),
		close:    closeFn,
	}, nil
}
