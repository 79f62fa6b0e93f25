// handlers/projects.go - Project idea handlers
package handlers

import (
	"hackmate/middleware"
	"hackmate/services"

	"github.com/gofiber/fiber/v2"
)

// CreateIdea posts a project idea
// POST /api/projects
func CreateIdea(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		HackathonID string   `json:"hackathon_id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		TechStack   []string `json:"tech_stack"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	idea, err := projectService.CreateIdea(c.UserContext(), user, services.CreateIdeaInput{
		HackathonID: req.HackathonID,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Project idea posted",
		"idea":    idea,
	})
}

// ListIdeas lists project ideas, optionally scoped to a hackathon
// GET /api/projects?hackathon_id=...
func ListIdeas(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	ideas, err := projectService.ListIdeas(c.UserContext(), user, c.Query("hackathon_id"), queryLimit(c, 50))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ideas":   ideas,
		"count":   len(ideas),
	})
}

// GetIdea retrieves one idea with comments
// GET /api/projects/:id
func GetIdea(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	idea, err := projectService.GetIdea(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"idea":    idea,
	})
}

// AddComment comments on an idea
// POST /api/projects/:id/comments
func AddComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	comment, err := projectService.AddComment(c.UserContext(), user, c.Params("id"), req.Body)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// ToggleEndorsement endorses or un-endorses an idea
// POST /api/projects/:id/endorse
func ToggleEndorsement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	endorsed, err := projectService.ToggleEndorsement(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"endorsed": endorsed,
	})
}

// DeleteIdea removes an idea (author only)
// DELETE /api/projects/:id
func DeleteIdea(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := projectService.DeleteIdea(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project idea deleted",
	})
}
