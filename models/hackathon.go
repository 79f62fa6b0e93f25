// models/hackathon.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hackathon struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"not null;size:150"`
	Description string `json:"description" gorm:"type:text"`
	Location    string `json:"location" gorm:"size:150"`
	Mode        string `json:"mode" gorm:"size:20;default:'online'"`
	PrizePool   string `json:"prize_pool" gorm:"size:100"`
	MaxTeamSize int    `json:"max_team_size" gorm:"default:5"`

	RegistrationDeadline time.Time `json:"registration_deadline"`
	StartDate            time.Time `json:"start_date" gorm:"index"`
	EndDate              time.Time `json:"end_date"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hackathon) TableName() string {
	return "hackathons"
}

func (h *Hackathon) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

type Registration struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	HackathonID string     `json:"hackathon_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_registrations_hackathon_user"`
	Hackathon   *Hackathon `json:"hackathon,omitempty" gorm:"foreignKey:HackathonID"`
	UserID      string     `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_registrations_hackathon_user"`

	Status RegistrationStatus `json:"status" gorm:"not null;default:'pending';index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Registration) TableName() string {
	return "registrations"
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
