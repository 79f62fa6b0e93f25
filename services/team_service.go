// services/team_service.go - Team formation business logic
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"hackmate/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamService struct {
	db       *gorm.DB
	matcher  *SkillMatcher
	notifier *NotificationService
}

func NewTeamService(db *gorm.DB, matcher *SkillMatcher, notifier *NotificationService) *TeamService {
	return &TeamService{db: db, matcher: matcher, notifier: notifier}
}

// storageErr wraps unexpected database failures so callers can detect a
// retryable condition with errors.Is.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", models.ErrRegistryUnavailable, err)
}

// lockForUpdate serializes mutations of a team row. Capacity checks and
// membership writes must see the same row version. SQLite (tests) has a
// single writer and rejects FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ================== TEAM CRUD OPERATIONS ==================

type CreateTeamInput struct {
	Name           string
	Description    string
	HackathonID    string
	TechStack      []string
	RequiredSkills []string
	MaxMembers     int
}

// CreateTeam creates a new team with the creator as leader and sole member.
func (s *TeamService) CreateTeam(ctx context.Context, creator *models.User, in CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: team name is required", models.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: team description is required", models.ErrValidation)
	}
	if in.HackathonID == "" {
		return nil, fmt.Errorf("%w: hackathon is required", models.ErrValidation)
	}
	if in.MaxMembers < 2 {
		return nil, fmt.Errorf("%w: a team needs room for at least 2 members", models.ErrValidation)
	}

	var hackathon models.Hackathon
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", in.HackathonID, true).
		First(&hackathon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrHackathonNotFound
		}
		return nil, storageErr(err)
	}
	if hackathon.MaxTeamSize > 0 && in.MaxMembers > hackathon.MaxTeamSize {
		return nil, fmt.Errorf("%w: %s allows at most %d members per team",
			models.ErrValidation, hackathon.Name, hackathon.MaxTeamSize)
	}

	code, err := s.generateUniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	team := &models.Team{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		HackathonID:    hackathon.ID,
		HackathonName:  hackathon.Name,
		TechStack:      in.TechStack,
		RequiredSkills: in.RequiredSkills,
		MaxMembers:     in.MaxMembers,
		CurrentMembers: 1,
		TeamLeadID:     creator.ID,
		InviteCode:     code,
		TeamStatus:     models.TeamStatusActive,
		IsActive:       true,
		CreatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return storageErr(err)
		}

		lead := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   creator.ID,
			Role:     models.TeamRoleLeader,
			Skills:   creator.Skills,
			JoinedAt: now,
		}
		if err := tx.Create(lead).Error; err != nil {
			return storageErr(err)
		}
		team.Members = []models.TeamMember{*lead}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// GetTeamByID retrieves a team with members preloaded. When viewer is not
// nil the skill match percentage and pending request count are annotated.
func (s *TeamService) GetTeamByID(ctx context.Context, teamID string, viewer *models.User) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", teamID, true).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTeamNotFound
		}
		return nil, storageErr(err)
	}

	s.annotate(ctx, viewer, &team)
	return &team, nil
}

// GetTeamByInviteCode retrieves a team by its invite code.
func (s *TeamService) GetTeamByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, models.ErrInvalidInviteCode
	}

	var team models.Team
	err := s.db.WithContext(ctx).
		Where("invite_code = ? AND is_active = ?", code, true).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidInviteCode
		}
		return nil, storageErr(err)
	}

	return &team, nil
}

// GetUserTeams retrieves all teams a user is a member of.
func (s *TeamService) GetUserTeams(ctx context.Context, userID string) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND teams.is_active = ?", userID, true).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		Find(&teams).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return teams, nil
}

type UpdateTeamInput struct {
	Name           *string
	Description    *string
	TechStack      *[]string
	RequiredSkills *[]string
	MaxMembers     *int
	TeamStatus     *models.TeamStatus
}

// UpdateTeam merges the provided fields into the team. Leader only.
// Capacity can never drop below the current member count.
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID string, in UpdateTeamInput) (*models.Team, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return fmt.Errorf("%w: team name cannot be empty", models.ErrValidation)
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			updates["description"] = strings.TrimSpace(*in.Description)
		}
		if in.TechStack != nil {
			updates["tech_stack"] = *in.TechStack
		}
		if in.RequiredSkills != nil {
			updates["required_skills"] = *in.RequiredSkills
		}
		if in.MaxMembers != nil {
			if *in.MaxMembers < 2 {
				return fmt.Errorf("%w: a team needs room for at least 2 members", models.ErrValidation)
			}
			if *in.MaxMembers < team.CurrentMembers {
				return fmt.Errorf("%w: capacity cannot drop below the current member count (%d)",
					models.ErrValidation, team.CurrentMembers)
			}
			updates["max_members"] = *in.MaxMembers
		}
		if in.TeamStatus != nil {
			switch *in.TeamStatus {
			case models.TeamStatusActive, models.TeamStatusCompleted:
				updates["team_status"] = *in.TeamStatus
			default:
				return fmt.Errorf("%w: unknown team status %q", models.ErrValidation, *in.TeamStatus)
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).Updates(updates).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTeamByID(ctx, teamID, nil)
}

// DisbandTeam soft deletes a team and rejects its outstanding requests.
// Leader only.
func (s *TeamService) DisbandTeam(ctx context.Context, userID, teamID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}

		now := time.Now()
		if err := tx.Model(&models.JoinRequest{}).
			Where("team_id = ? AND status = ?", teamID, models.JoinRequestPending).
			Updates(map[string]interface{}{
				"status":      models.JoinRequestRejected,
				"resolved_at": now,
			}).Error; err != nil {
			return storageErr(err)
		}

		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("is_active", false).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
}

// ================== MEMBERSHIP OPERATIONS ==================

// JoinWithCode adds the user to the team identified by the invite code.
// Invite-code joins bypass the request/approval flow. The capacity check
// and the membership insert run under the same row lock.
func (s *TeamService) JoinWithCode(ctx context.Context, user *models.User, code string) (*models.Team, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, models.ErrInvalidInviteCode
	}

	var teamID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := lockForUpdate(tx).
			Where("invite_code = ? AND is_active = ?", code, true).
			First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrInvalidInviteCode
			}
			return storageErr(err)
		}
		teamID = team.ID

		var count int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", team.ID, user.ID).
			Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			return models.ErrAlreadyMember
		}

		if !team.HasCapacity() {
			return models.ErrTeamFull
		}

		now := time.Now()
		member := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   user.ID,
			Role:     models.TeamRoleMember,
			Skills:   user.Skills,
			JoinedAt: now,
		}
		if err := tx.Create(member).Error; err != nil {
			return storageErr(err)
		}

		if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
			Update("current_members", team.CurrentMembers+1).Error; err != nil {
			return storageErr(err)
		}

		// A pending request from this user is moot once they are in.
		if err := tx.Model(&models.JoinRequest{}).
			Where("team_id = ? AND user_id = ? AND status = ?", team.ID, user.ID, models.JoinRequestPending).
			Updates(map[string]interface{}{
				"status":      models.JoinRequestAccepted,
				"resolved_at": now,
			}).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	team, err := s.GetTeamByID(ctx, teamID, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, team.TeamLeadID, models.NotificationMemberJoined,
		"New team member",
		fmt.Sprintf("%s joined %s via invite code", user.Username, team.Name),
		team.ID)

	return team, nil
}

// RequestToJoin records a pending join request. At most one outstanding
// request per (user, team).
func (s *TeamService) RequestToJoin(ctx context.Context, user *models.User, teamID, message string) (*models.JoinRequest, error) {
	var request *models.JoinRequest
	var leadID, teamName string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		leadID, teamName = team.TeamLeadID, team.Name

		var count int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, user.ID).
			Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			return models.ErrAlreadyMember
		}

		if !team.HasCapacity() {
			return models.ErrTeamFull
		}

		if err := tx.Model(&models.JoinRequest{}).
			Where("team_id = ? AND user_id = ? AND status = ?", teamID, user.ID, models.JoinRequestPending).
			Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			return models.ErrDuplicateRequest
		}

		request = &models.JoinRequest{
			TeamID:     teamID,
			UserID:     user.ID,
			UserName:   user.Username,
			UserSkills: user.Skills,
			Message:    strings.TrimSpace(message),
			Status:     models.JoinRequestPending,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(request).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, leadID, models.NotificationJoinRequest,
		"New join request",
		fmt.Sprintf("%s asked to join %s", user.Username, teamName),
		teamID)

	return request, nil
}

// AcceptRequest resolves a pending request and adds the requester to the
// team: the member record is appended and the member count incremented in
// the same transaction, so current_members always equals the roster size.
// Leader only. A full team fails with ErrTeamFull and the request stays
// pending.
func (s *TeamService) AcceptRequest(ctx context.Context, userID, requestID string) (*models.JoinRequest, error) {
	var request models.JoinRequest
	var teamName string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRequestNotFound
			}
			return storageErr(err)
		}
		if request.Status != models.JoinRequestPending {
			return models.ErrRequestResolved
		}

		team, err := lockTeam(tx, request.TeamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}
		teamName = team.Name

		var count int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", team.ID, request.UserID).
			Count(&count).Error; err != nil {
			return storageErr(err)
		}

		now := time.Now()
		if count == 0 {
			if !team.HasCapacity() {
				return models.ErrTeamFull
			}

			member := &models.TeamMember{
				TeamID:   team.ID,
				UserID:   request.UserID,
				Role:     models.TeamRoleMember,
				Skills:   request.UserSkills,
				JoinedAt: now,
			}
			if err := tx.Create(member).Error; err != nil {
				return storageErr(err)
			}
			if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
				Update("current_members", team.CurrentMembers+1).Error; err != nil {
				return storageErr(err)
			}
		}

		request.Status = models.JoinRequestAccepted
		request.ResolvedAt = &now
		if err := tx.Model(&models.JoinRequest{}).Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":      models.JoinRequestAccepted,
				"resolved_at": now,
			}).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, request.UserID, models.NotificationRequestAccepted,
		"Request accepted",
		fmt.Sprintf("You are now a member of %s", teamName),
		request.TeamID)

	return &request, nil
}

// RejectRequest resolves a pending request without touching the roster.
// Leader only.
func (s *TeamService) RejectRequest(ctx context.Context, userID, requestID string) (*models.JoinRequest, error) {
	var request models.JoinRequest
	var teamName string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRequestNotFound
			}
			return storageErr(err)
		}
		if request.Status != models.JoinRequestPending {
			return models.ErrRequestResolved
		}

		team, err := lockTeam(tx, request.TeamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}
		teamName = team.Name

		now := time.Now()
		request.Status = models.JoinRequestRejected
		request.ResolvedAt = &now
		if err := tx.Model(&models.JoinRequest{}).Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":      models.JoinRequestRejected,
				"resolved_at": now,
			}).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, request.UserID, models.NotificationRequestRejected,
		"Request declined",
		fmt.Sprintf("Your request to join %s was declined", teamName),
		request.TeamID)

	return &request, nil
}

// LeaveTeam removes the caller from the team. The leader cannot leave;
// leadership must be transferred first. Enforced here, not in the UI.
func (s *TeamService) LeaveTeam(ctx context.Context, userID, teamID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}

		var member models.TeamMember
		if err := tx.Where("team_id = ? AND user_id = ?", teamID, userID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotMember
			}
			return storageErr(err)
		}

		if member.Role == models.TeamRoleLeader {
			return models.ErrLeaderCannotLeave
		}

		if err := tx.Delete(&member).Error; err != nil {
			return storageErr(err)
		}
		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("current_members", team.CurrentMembers-1).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
}

// RemoveMember removes a member from the team. Leader only; the leader
// cannot be removed.
func (s *TeamService) RemoveMember(ctx context.Context, userID, teamID, memberUserID string) error {
	var teamName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}
		teamName = team.Name

		var member models.TeamMember
		if err := tx.Where("team_id = ? AND user_id = ?", teamID, memberUserID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotMember
			}
			return storageErr(err)
		}
		if member.Role == models.TeamRoleLeader {
			return fmt.Errorf("%w: the team leader cannot be removed", models.ErrValidation)
		}

		if err := tx.Delete(&member).Error; err != nil {
			return storageErr(err)
		}
		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("current_members", team.CurrentMembers-1).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, memberUserID, models.NotificationMemberRemoved,
		"Removed from team",
		fmt.Sprintf("You were removed from %s", teamName),
		teamID)

	return nil
}

// TransferLeadership hands the leader role to an existing member. Exactly
// one leader exists at all times; both role updates and the team pointer
// change in one transaction.
func (s *TeamService) TransferLeadership(ctx context.Context, userID, teamID, newLeadID string) error {
	var teamName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if team.TeamLeadID != userID {
			return models.ErrNotLeader
		}
		if newLeadID == userID {
			return fmt.Errorf("%w: already the team leader", models.ErrValidation)
		}
		teamName = team.Name

		var newLead models.TeamMember
		if err := tx.Where("team_id = ? AND user_id = ?", teamID, newLeadID).
			First(&newLead).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotMember
			}
			return storageErr(err)
		}

		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, userID).
			Update("role", models.TeamRoleMember).Error; err != nil {
			return storageErr(err)
		}
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, newLeadID).
			Update("role", models.TeamRoleLeader).Error; err != nil {
			return storageErr(err)
		}
		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("team_lead_id", newLeadID).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, newLeadID, models.NotificationLeadershipChange,
		"You are now team leader",
		fmt.Sprintf("Leadership of %s was transferred to you", teamName),
		teamID)

	return nil
}

// ================== REQUEST QUERIES ==================

// ListRequestsForTeam returns the pending requests of a team. Leader only.
func (s *TeamService) ListRequestsForTeam(ctx context.Context, userID, teamID string) ([]models.JoinRequest, error) {
	team, err := s.GetTeamByID(ctx, teamID, nil)
	if err != nil {
		return nil, err
	}
	if team.TeamLeadID != userID {
		return nil, models.ErrNotLeader
	}

	var requests []models.JoinRequest
	err = s.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, models.JoinRequestPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return requests, nil
}

// ListRequestsByUser returns all requests the user has sent, newest first.
func (s *TeamService) ListRequestsByUser(ctx context.Context, userID string) ([]models.JoinRequest, error) {
	var requests []models.JoinRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Team").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return requests, nil
}

// ================== DISCOVERY ==================

// ListAvailableTeams returns active teams with open spots that the viewer
// is not already on, annotated with the viewer's skill match.
func (s *TeamService) ListAvailableTeams(ctx context.Context, viewer *models.User, hackathonID string, limit int) ([]models.Team, error) {
	if limit <= 0 {
		limit = 20
	}

	q := s.db.WithContext(ctx).
		Where("is_active = ? AND team_status = ?", true, models.TeamStatusActive).
		Where("current_members < max_members")
	if hackathonID != "" {
		q = q.Where("hackathon_id = ?", hackathonID)
	}
	if viewer != nil {
		q = q.Where("id NOT IN (?)",
			s.db.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", viewer.ID))
	}

	var teams []models.Team
	err := q.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		Order("created_at DESC").
		Limit(limit).
		Find(&teams).Error
	if err != nil {
		return nil, storageErr(err)
	}

	s.annotateAll(ctx, viewer, teams)
	return teams, nil
}

// SearchTeams searches active teams by name or description.
func (s *TeamService) SearchTeams(ctx context.Context, viewer *models.User, query string, limit int) ([]models.Team, error) {
	if limit <= 0 {
		limit = 20
	}

	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var teams []models.Team
	err := q.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Order("created_at DESC").
		Limit(limit).
		Find(&teams).Error
	if err != nil {
		return nil, storageErr(err)
	}

	s.annotateAll(ctx, viewer, teams)
	return teams, nil
}

// GetTeamMembers returns the roster in join order.
func (s *TeamService) GetTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return members, nil
}

// ================== HELPERS ==================

// lockTeam loads an active team under a row lock inside tx.
func lockTeam(tx *gorm.DB, teamID string) (*models.Team, error) {
	var team models.Team
	if err := lockForUpdate(tx).
		Where("id = ? AND is_active = ?", teamID, true).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTeamNotFound
		}
		return nil, storageErr(err)
	}
	return &team, nil
}

func (s *TeamService) annotate(ctx context.Context, viewer *models.User, team *models.Team) {
	if viewer != nil && s.matcher != nil {
		team.SkillMatchPercentage = s.matcher.Match(viewer.Skills, team.RequiredSkills)
	}
	var pending int64
	s.db.WithContext(ctx).Model(&models.JoinRequest{}).
		Where("team_id = ? AND status = ?", team.ID, models.JoinRequestPending).
		Count(&pending)
	team.PendingRequests = pending
}

func (s *TeamService) annotateAll(ctx context.Context, viewer *models.User, teams []models.Team) {
	if len(teams) == 0 {
		return
	}

	ids := make([]string, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
	}

	type pendingCount struct {
		TeamID string
		Count  int64
	}
	var counts []pendingCount
	s.db.WithContext(ctx).Model(&models.JoinRequest{}).
		Select("team_id, COUNT(*) as count").
		Where("team_id IN ? AND status = ?", ids, models.JoinRequestPending).
		Group("team_id").
		Scan(&counts)

	pending := make(map[string]int64, len(counts))
	for _, c := range counts {
		pending[c.TeamID] = c.Count
	}

	for i := range teams {
		teams[i].PendingRequests = pending[teams[i].ID]
		if viewer != nil && s.matcher != nil {
			teams[i].SkillMatchPercentage = s.matcher.Match(viewer.Skills, teams[i].RequiredSkills)
		}
	}
}

func (s *TeamService) notify(ctx context.Context, userID string, t models.NotificationType, title, body, teamID string) {
	if s.notifier == nil || userID == "" {
		return
	}
	s.notifier.Push(ctx, userID, t, title, body, teamID)
}

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const inviteCodeLength = 8

// generateUniqueInviteCode generates an 8-character code and re-rolls on
// the rare collision with an existing team.
func (s *TeamService) generateUniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		buf := make([]byte, inviteCodeLength)
		if _, err := rand.Read(buf); err != nil {
			return "", storageErr(err)
		}
		for i, b := range buf {
			buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
		}
		code := string(buf)

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Team{}).
			Where("invite_code = ?", code).
			Count(&count).Error; err != nil {
			return "", storageErr(err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique invite code", models.ErrRegistryUnavailable)
}
