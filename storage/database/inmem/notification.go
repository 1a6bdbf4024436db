package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core/notification"
)

type notificationRepository struct {
	db *DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	n.ID = repo.db.nextID("notifications")
	repo.db.notifications[n.ID] = n
	return n, nil
}

func (repo *notificationRepository) GetNotificationByID(_ context.Context, id int) (notification.Notification, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	n, ok := repo.db.notifications[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	return n, nil
}

func (repo *notificationRepository) QueryNotificationsByUser(_ context.Context, userID int) ([]notification.Notification, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	notes := make([]notification.Notification, 0)
	for _, n := range repo.db.notifications {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID > notes[j].ID }) // newest first
	return notes, nil
}

func (repo *notificationRepository) MarkNotificationRead(_ context.Context, id int) (notification.Notification, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	n, ok := repo.db.notifications[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	n.IsRead = true
	repo.db.notifications[id] = n
	return n, nil
}

func (repo *notificationRepository) MarkAllNotificationsRead(_ context.Context, userID int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for id, n := range repo.db.notifications {
		if n.UserID == userID {
			n.IsRead = true
			repo.db.notifications[id] = n
		}
	}
	return nil
}
