// services/hackathon_service.go - Hackathon catalog and registrations
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hackmate/models"

	"gorm.io/gorm"
)

type HackathonService struct {
	db *gorm.DB
}

func NewHackathonService(db *gorm.DB) *HackathonService {
	return &HackathonService{db: db}
}

// ListHackathons returns active hackathons, soonest first. Past events are
// included only when includePast is set.
func (s *HackathonService) ListHackathons(ctx context.Context, includePast bool, limit int) ([]models.Hackathon, error) {
	if limit <= 0 {
		limit = 20
	}

	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if !includePast {
		q = q.Where("end_date >= ?", time.Now())
	}

	var hackathons []models.Hackathon
	if err := q.Order("start_date ASC").Limit(limit).Find(&hackathons).Error; err != nil {
		return nil, storageErr(err)
	}
	return hackathons, nil
}

// GetHackathon retrieves one hackathon by ID.
func (s *HackathonService) GetHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&hackathon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrHackathonNotFound
		}
		return nil, storageErr(err)
	}
	return &hackathon, nil
}

// Register creates a pending registration for the hackathon. A cancelled
// registration is revived instead of inserting a second row; one row per
// (user, hackathon) always.
func (s *HackathonService) Register(ctx context.Context, userID, hackathonID string) (*models.Registration, error) {
	hackathon, err := s.GetHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if !hackathon.RegistrationDeadline.IsZero() && time.Now().After(hackathon.RegistrationDeadline) {
		return nil, fmt.Errorf("%w: registration for %s closed", models.ErrValidation, hackathon.Name)
	}

	var registration models.Registration
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
			First(&registration).Error
		switch {
		case err == nil:
			if registration.Status != models.RegistrationCancelled {
				return models.ErrAlreadyRegistered
			}
			registration.Status = models.RegistrationPending
			return tx.Model(&registration).Update("status", models.RegistrationPending).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			registration = models.Registration{
				HackathonID: hackathonID,
				UserID:      userID,
				Status:      models.RegistrationPending,
				CreatedAt:   time.Now(),
			}
			return tx.Create(&registration).Error
		default:
			return storageErr(err)
		}
	})
	if err != nil {
		return nil, err
	}

	registration.Hackathon = hackathon
	return &registration, nil
}

// ConfirmRegistration moves a pending registration to confirmed.
func (s *HackathonService) ConfirmRegistration(ctx context.Context, userID, hackathonID string) error {
	return s.setRegistrationStatus(ctx, userID, hackathonID,
		models.RegistrationPending, models.RegistrationConfirmed)
}

// CancelRegistration cancels a pending or confirmed registration.
func (s *HackathonService) CancelRegistration(ctx context.Context, userID, hackathonID string) error {
	res := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("hackathon_id = ? AND user_id = ? AND status IN ?",
			hackathonID, userID,
			[]models.RegistrationStatus{models.RegistrationPending, models.RegistrationConfirmed}).
		Update("status", models.RegistrationCancelled)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no active registration for this hackathon", models.ErrValidation)
	}
	return nil
}

// ListUserRegistrations returns the user's registrations with events
// preloaded, soonest event first.
func (s *HackathonService) ListUserRegistrations(ctx context.Context, userID string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.WithContext(ctx).
		Joins("JOIN hackathons ON hackathons.id = registrations.hackathon_id").
		Where("registrations.user_id = ?", userID).
		Preload("Hackathon").
		Order("hackathons.start_date ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return registrations, nil
}

// UpcomingDeadlines returns hackathons the user is registered for whose
// registration deadline or start date falls within the window.
func (s *HackathonService) UpcomingDeadlines(ctx context.Context, userID string, within time.Duration) ([]models.Hackathon, error) {
	now := time.Now()
	until := now.Add(within)

	var hackathons []models.Hackathon
	err := s.db.WithContext(ctx).Model(&models.Hackathon{}).
		Joins("JOIN registrations ON registrations.hackathon_id = hackathons.id").
		Where("registrations.user_id = ? AND registrations.status != ?", userID, models.RegistrationCancelled).
		Where("hackathons.is_active = ?", true).
		Where("(hackathons.registration_deadline BETWEEN ? AND ?) OR (hackathons.start_date BETWEEN ? AND ?)",
			now, until, now, until).
		Order("hackathons.start_date ASC").
		Find(&hackathons).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return hackathons, nil
}

func (s *HackathonService) setRegistrationStatus(ctx context.Context, userID, hackathonID string, from, to models.RegistrationStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("hackathon_id = ? AND user_id = ? AND status = ?", hackathonID, userID, from).
		Update("status", to)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no %s registration for this hackathon", models.ErrValidation, from)
	}
	return nil
}
