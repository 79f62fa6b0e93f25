// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string  `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string  `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email       *string `json:"email,omitempty" gorm:"uniqueIndex"`
	Password    string  `json:"-" gorm:"not null"`
	DisplayName string  `json:"display_name" gorm:"size:100"`
	Avatar      string  `json:"avatar"`
	Bio         string  `json:"bio" gorm:"type:text"`

	// Skills drive the per-viewer match percentage on team listings.
	Skills []string `json:"skills" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

// TableName keeps the persisted contract of the original schema.
func (User) TableName() string {
	return "profiles"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
