// handlers/handlers.go - Service wiring and shared helpers
package handlers

import (
	"errors"

	"hackmate/database"
	"hackmate/middleware"
	"hackmate/models"
	"hackmate/services"

	"github.com/gofiber/fiber/v2"
)

var (
	teamService         *services.TeamService
	hackathonService    *services.HackathonService
	projectService      *services.ProjectService
	notificationService *services.NotificationService
)

// InitHandlers wires the services. Must run after database.InitDB.
func InitHandlers() {
	db := database.GetDB()
	notificationService = services.NewNotificationService(db)
	teamService = services.NewTeamService(db, services.NewSkillMatcher(), notificationService)
	hackathonService = services.NewHackathonService(db)
	projectService = services.NewProjectService(db)
}

// currentUser loads the authenticated caller's profile.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.GetDB().WithContext(c.UserContext()).
		First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(401, "User not found")
	}
	return &user, nil
}

// respondError maps registry errors to HTTP statuses in one place.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrTeamNotFound),
		errors.Is(err, models.ErrHackathonNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrIdeaNotFound),
		errors.Is(err, models.ErrInvalidInviteCode):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrTeamFull),
		errors.Is(err, models.ErrAlreadyMember),
		errors.Is(err, models.ErrDuplicateRequest),
		errors.Is(err, models.ErrRequestResolved),
		errors.Is(err, models.ErrAlreadyRegistered):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrNotLeader),
		errors.Is(err, models.ErrLeaderCannotLeave),
		errors.Is(err, models.ErrNotMember):
		status = fiber.StatusForbidden
	case errors.Is(err, models.ErrRegistryUnavailable):
		status = fiber.StatusServiceUnavailable
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
