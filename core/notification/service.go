package notification

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("notification not found")
	// ErrNotOwner is returned when a user tries to act on someone else's notification.
	ErrNotOwner = errors.New("notification belongs to another user")
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification) (Notification, error)
		GetNotificationByID(ctx context.Context, id int) (Notification, error)
		// QueryNotificationsByUser returns the user's notifications, newest first.
		QueryNotificationsByUser(ctx context.Context, userID int) ([]Notification, error)
		MarkNotificationRead(ctx context.Context, id int) (Notification, error)
		MarkAllNotificationsRead(ctx context.Context, userID int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryByUser(ctx context.Context, userID int) ([]Notification, error) {
	return svc.repo.QueryNotificationsByUser(ctx, userID)
}

// MarkRead marks a single notification read; only its owner may do so.
func (svc *Service) MarkRead(ctx context.Context, id, userID int) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != userID {
		return Notification{}, ErrNotOwner
	}
	return svc.repo.MarkNotificationRead(ctx, id)
}

func (svc *Service) MarkAllRead(ctx context.Context, userID int) error {
	return svc.repo.MarkAllNotificationsRead(ctx, userID)
}
