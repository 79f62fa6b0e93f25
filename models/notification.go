// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationJoinRequest      NotificationType = "join_request"
	NotificationRequestAccepted  NotificationType = "request_accepted"
	NotificationRequestRejected  NotificationType = "request_rejected"
	NotificationMemberJoined     NotificationType = "member_joined"
	NotificationMemberRemoved    NotificationType = "member_removed"
	NotificationLeadershipChange NotificationType = "leadership_transferred"
	NotificationDeadline         NotificationType = "deadline_reminder"
)

type Notification struct {
	ID     string           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID string           `json:"user_id" gorm:"type:uuid;not null;index"`
	Type   NotificationType `json:"type" gorm:"not null;size:40"`
	Title  string           `json:"title" gorm:"size:150"`
	Body   string           `json:"body" gorm:"type:text"`
	TeamID string           `json:"team_id,omitempty" gorm:"type:uuid;index"`

	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
