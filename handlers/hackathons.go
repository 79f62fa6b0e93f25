// handlers/hackathons.go - Hackathon catalog and registration handlers
package handlers

import (
	"time"

	"hackmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListHackathons lists upcoming hackathons
// GET /api/hackathons?include_past=true
func ListHackathons(c *fiber.Ctx) error {
	includePast := c.Query("include_past") == "true"

	hackathons, err := hackathonService.ListHackathons(c.UserContext(), includePast, queryLimit(c, 20))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"hackathons": hackathons,
		"count":      len(hackathons),
	})
}

// GetHackathon retrieves one hackathon
// GET /api/hackathons/:id
func GetHackathon(c *fiber.Ctx) error {
	hackathon, err := hackathonService.GetHackathon(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"hackathon": hackathon,
	})
}

// RegisterForHackathon registers the caller for a hackathon
// POST /api/hackathons/:id/register
func RegisterForHackathon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	registration, err := hackathonService.Register(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"message":      "Registered for hackathon",
		"registration": registration,
	})
}

// ConfirmRegistration confirms a pending registration
// PUT /api/hackathons/:id/registration/confirm
func ConfirmRegistration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := hackathonService.ConfirmRegistration(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration confirmed",
	})
}

// CancelRegistration cancels a registration
// DELETE /api/hackathons/:id/registration
func CancelRegistration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := hackathonService.CancelRegistration(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration cancelled",
	})
}

// MyRegistrations lists the caller's registrations
// GET /api/hackathons/registrations
func MyRegistrations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	registrations, err := hackathonService.ListUserRegistrations(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"registrations": registrations,
		"count":         len(registrations),
	})
}

// UpcomingDeadlines lists registration deadlines and start dates coming up
// for the caller's hackathons
// GET /api/hackathons/deadlines?days=7
func UpcomingDeadlines(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	days := queryInt(c, "days", 7)

	hackathons, err := hackathonService.UpcomingDeadlines(c.UserContext(), userID,
		time.Duration(days)*24*time.Hour)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"hackathons": hackathons,
		"count":      len(hackathons),
	})
}
