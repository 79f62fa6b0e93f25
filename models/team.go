// models/team.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamStatus string

const (
	TeamStatusActive    TeamStatus = "active"
	TeamStatusCompleted TeamStatus = "completed"
)

type Team struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"type:text"`

	HackathonID   string `json:"hackathon_id" gorm:"type:uuid;not null;index"`
	HackathonName string `json:"hackathon_name" gorm:"size:150"`

	TechStack      []string `json:"tech_stack" gorm:"serializer:json"`
	RequiredSkills []string `json:"required_skills" gorm:"serializer:json"`

	MaxMembers     int `json:"max_members" gorm:"not null"`
	CurrentMembers int `json:"current_members" gorm:"not null;default:1"`

	TeamLeadID string     `json:"team_lead_id" gorm:"type:uuid;not null"`
	InviteCode string     `json:"invite_code" gorm:"unique;size:12"`
	TeamStatus TeamStatus `json:"team_status" gorm:"size:20;default:'active'"`
	IsActive   bool       `json:"is_active" gorm:"default:true;index"`

	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived per viewing user at query time, never stored.
	SkillMatchPercentage int   `json:"skill_match_percentage" gorm:"-"`
	PendingRequests      int64 `json:"pending_requests" gorm:"-"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// HasCapacity reports whether the team can take another member.
func (t *Team) HasCapacity() bool {
	return t.CurrentMembers < t.MaxMembers
}
