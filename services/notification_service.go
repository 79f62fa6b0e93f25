// services/notification_service.go - Notification persistence and live fan-out
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"hackmate/models"

	"gorm.io/gorm"
)

// NotificationService persists notifications and fans them out to live
// WebSocket subscribers. Delivery to subscribers is best effort; the row
// in the notifications table is the source of truth.
type NotificationService struct {
	db *gorm.DB

	mu   sync.RWMutex
	subs map[string][]chan models.Notification
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:   db,
		subs: make(map[string][]chan models.Notification),
	}
}

// Push stores a notification and forwards it to any live subscribers of
// the user. Failures are logged, never propagated: notifying is a side
// effect of registry operations that must not undo them.
func (s *NotificationService) Push(ctx context.Context, userID string, t models.NotificationType, title, body, teamID string) {
	n := models.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Body:      body,
		TeamID:    teamID,
		CreatedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("notification store failed for user %s: %v", userID, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs[userID] {
		select {
		case ch <- n:
		default:
			// Slow consumer, it will catch up from the table.
		}
	}
}

// Subscribe registers a live feed for the user. The returned cancel
// function must be called when the connection closes.
func (s *NotificationService) Subscribe(userID string) (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, 16)

	s.mu.Lock()
	s.subs[userID] = append(s.subs[userID], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		chans := s.subs[userID]
		for i, c := range chans {
			if c == ch {
				s.subs[userID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		if len(s.subs[userID]) == 0 {
			delete(s.subs, userID)
		}
		close(ch)
	}
	return ch, cancel
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrValidation
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}
