// models/project.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectIdea struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	HackathonID string `json:"hackathon_id" gorm:"type:uuid;not null;index"`
	AuthorID    string `json:"author_id" gorm:"type:uuid;not null;index"`
	Author      *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	Title       string   `json:"title" gorm:"not null;size:150"`
	Description string   `json:"description" gorm:"type:text"`
	TechStack   []string `json:"tech_stack" gorm:"serializer:json"`

	Comments []ProjectComment `json:"comments,omitempty" gorm:"foreignKey:ProjectID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived at query time.
	Endorsements int64 `json:"endorsements" gorm:"-"`
	Endorsed     bool  `json:"endorsed" gorm:"-"`
}

func (ProjectIdea) TableName() string {
	return "project_ideas"
}

func (p *ProjectIdea) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProjectComment struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID string `json:"project_id" gorm:"type:uuid;not null;index"`
	AuthorID  string `json:"author_id" gorm:"type:uuid;not null"`
	Author    *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	Body string `json:"body" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (ProjectComment) TableName() string {
	return "project_comments"
}

func (c *ProjectComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ProjectEndorsement struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID string `json:"project_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_endorsements_project_user"`
	UserID    string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_endorsements_project_user"`

	CreatedAt time.Time `json:"created_at"`
}

func (ProjectEndorsement) TableName() string {
	return "project_endorsements"
}

func (e *ProjectEndorsement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
