// models/team_member.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRole string

const (
	TeamRoleLeader TeamRole = "leader"
	TeamRoleMember TeamRole = "member"
)

type TeamMember struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	TeamID string `json:"team_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_team_members_team_user"`
	Team   *Team  `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UserID string `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_team_members_team_user"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Role TeamRole `json:"role" gorm:"not null;default:'member'"`

	// Snapshot of the user's skills at join time, shown on rosters.
	Skills []string `json:"skills" gorm:"serializer:json"`

	JoinedAt time.Time `json:"joined_at" gorm:"not null"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
