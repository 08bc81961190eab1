package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/ports"
	domain "user-admin-dashboard/internal/domain/user"
	"user-admin-dashboard/internal/infrastructure/metrics"
	"user-admin-dashboard/internal/infrastructure/mq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDeletionFailed means the store did not confirm the delete; the
	// record may still exist and the call can be retried.
	ErrDeletionFailed = errors.New("failed to delete user")
)

type DirectoryService struct {
	userRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewDirectoryService(
	userRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.DirectoryService {
	if events == nil {
		events = mq.Nop{}
	}
	return &DirectoryService{
		userRepository: userRepository,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (ds *DirectoryService) List(ctx context.Context) domain.Users {
	users, err := ds.userRepository.FetchUsers(ctx)
	if err != nil {
		ds.logger.Error("list users failed", zap.Error(err))
		ds.mCounter.WithLabelValues(metrics.UsersListFailed).Inc()
		return domain.Users{}
	}
	if users == nil {
		users = domain.Users{}
	}

	ds.mCounter.WithLabelValues(metrics.UsersListed).Inc()

	return users
}

func (ds *DirectoryService) Delete(ctx context.Context, id domain.ID, by ports.Actor) error {
	if err := ds.userRepository.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		ds.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		ds.mCounter.WithLabelValues(metrics.UserDeleteFailed).Inc()
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}

	ds.events.Publish(mq.Event{
		Id:        uuid.New(),
		TS:        time.Now(),
		Action:    mq.EventUserDeleted,
		UserID:    id,
		Actor:     by.AdminPhone,
		AttemptID: by.AttemptID,
	})

	ds.logger.Info("user deleted",
		zap.String("user_id", id),
		zap.String("admin_phone", by.AdminPhone),
		zap.String("attempt_id", by.AttemptID),
	)
	ds.mCounter.WithLabelValues(metrics.UserDeleted).Inc()

	return nil
}
