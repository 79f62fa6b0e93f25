// models/join_request.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestAccepted JoinRequestStatus = "accepted"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a pending ask to join a team. Transitions are one-way:
// pending -> accepted or pending -> rejected, never back.
type JoinRequest struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	TeamID string `json:"team_id" gorm:"type:uuid;not null;index"`
	Team   *Team  `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UserID string `json:"user_id" gorm:"type:uuid;not null;index"`

	// Denormalized so the leader's inbox renders without extra lookups.
	UserName   string   `json:"user_name" gorm:"size:100"`
	UserSkills []string `json:"user_skills" gorm:"serializer:json"`

	Message string            `json:"message" gorm:"type:text"`
	Status  JoinRequestStatus `json:"status" gorm:"not null;default:'pending';index"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}

func (r *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
