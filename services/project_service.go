// services/project_service.go - Project ideas, comments and endorsements
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hackmate/models"

	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateIdeaInput struct {
	HackathonID string
	Title       string
	Description string
	TechStack   []string
}

// CreateIdea posts a project idea for a hackathon.
func (s *ProjectService) CreateIdea(ctx context.Context, author *models.User, in CreateIdeaInput) (*models.ProjectIdea, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if in.HackathonID == "" {
		return nil, fmt.Errorf("%w: hackathon is required", models.ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Hackathon{}).
		Where("id = ? AND is_active = ?", in.HackathonID, true).
		Count(&count).Error; err != nil {
		return nil, storageErr(err)
	}
	if count == 0 {
		return nil, models.ErrHackathonNotFound
	}

	idea := &models.ProjectIdea{
		HackathonID: in.HackathonID,
		AuthorID:    author.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		TechStack:   in.TechStack,
		CreatedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, storageErr(err)
	}
	return idea, nil
}

// ListIdeas returns ideas for a hackathon with endorsement counts, newest
// first. When viewer is set each idea is flagged if the viewer endorsed it.
func (s *ProjectService) ListIdeas(ctx context.Context, viewer *models.User, hackathonID string, limit int) ([]models.ProjectIdea, error) {
	if limit <= 0 {
		limit = 50
	}

	q := s.db.WithContext(ctx)
	if hackathonID != "" {
		q = q.Where("hackathon_id = ?", hackathonID)
	}

	var ideas []models.ProjectIdea
	err := q.
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&ideas).Error
	if err != nil {
		return nil, storageErr(err)
	}

	s.annotateEndorsements(ctx, viewer, ideas)
	return ideas, nil
}

// GetIdea retrieves one idea with comments and endorsement count.
func (s *ProjectService) GetIdea(ctx context.Context, viewer *models.User, ideaID string) (*models.ProjectIdea, error) {
	var idea models.ProjectIdea
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.Author").
		Where("id = ?", ideaID).
		First(&idea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrIdeaNotFound
		}
		return nil, storageErr(err)
	}

	ideas := []models.ProjectIdea{idea}
	s.annotateEndorsements(ctx, viewer, ideas)
	return &ideas[0], nil
}

// AddComment appends a comment to an idea.
func (s *ProjectService) AddComment(ctx context.Context, author *models.User, ideaID, body string) (*models.ProjectComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", models.ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ProjectIdea{}).
		Where("id = ?", ideaID).Count(&count).Error; err != nil {
		return nil, storageErr(err)
	}
	if count == 0 {
		return nil, models.ErrIdeaNotFound
	}

	comment := &models.ProjectComment{
		ProjectID: ideaID,
		AuthorID:  author.ID,
		Body:      strings.TrimSpace(body),
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, storageErr(err)
	}
	return comment, nil
}

// ToggleEndorsement endorses an idea, or withdraws an existing endorsement.
// Returns whether the idea is endorsed by the user afterwards.
func (s *ProjectService) ToggleEndorsement(ctx context.Context, userID, ideaID string) (bool, error) {
	var endorsed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProjectIdea{}).
			Where("id = ?", ideaID).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count == 0 {
			return models.ErrIdeaNotFound
		}

		var existing models.ProjectEndorsement
		err := tx.Where("project_id = ? AND user_id = ?", ideaID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			endorsed = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			endorsed = true
			return tx.Create(&models.ProjectEndorsement{
				ProjectID: ideaID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}).Error
		default:
			return storageErr(err)
		}
	})
	if err != nil {
		return false, err
	}
	return endorsed, nil
}

// DeleteIdea removes an idea with its comments and endorsements. Author only.
func (s *ProjectService) DeleteIdea(ctx context.Context, userID, ideaID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea models.ProjectIdea
		if err := tx.Where("id = ?", ideaID).First(&idea).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrIdeaNotFound
			}
			return storageErr(err)
		}
		if idea.AuthorID != userID {
			return fmt.Errorf("%w: only the author can delete an idea", models.ErrValidation)
		}

		if err := tx.Where("project_id = ?", ideaID).Delete(&models.ProjectComment{}).Error; err != nil {
			return storageErr(err)
		}
		if err := tx.Where("project_id = ?", ideaID).Delete(&models.ProjectEndorsement{}).Error; err != nil {
			return storageErr(err)
		}
		return tx.Delete(&idea).Error
	})
}

func (s *ProjectService) annotateEndorsements(ctx context.Context, viewer *models.User, ideas []models.ProjectIdea) {
	if len(ideas) == 0 {
		return
	}

	ids := make([]string, len(ideas))
	for i := range ideas {
		ids[i] = ideas[i].ID
	}

	type endorsementCount struct {
		ProjectID string
		Count     int64
	}
	var counts []endorsementCount
	s.db.WithContext(ctx).Model(&models.ProjectEndorsement{}).
		Select("project_id, COUNT(*) as count").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&counts)

	byProject := make(map[string]int64, len(counts))
	for _, c := range counts {
		byProject[c.ProjectID] = c.Count
	}

	mine := make(map[string]bool)
	if viewer != nil {
		var endorsed []string
		s.db.WithContext(ctx).Model(&models.ProjectEndorsement{}).
			Where("project_id IN ? AND user_id = ?", ids, viewer.ID).
			Pluck("project_id", &endorsed)
		for _, id := range endorsed {
			mine[id] = true
		}
	}

	for i := range ideas {
		ideas[i].Endorsements = byProject[ideas[i].ID]
		ideas[i].Endorsed = mine[ideas[i].ID]
	}
}
