// handlers/users.go - Profile endpoints
package handlers

import (
	"strconv"

	"hackmate/database"
	"hackmate/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's profile
// GET /api/users/me
func GetCurrentUser(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// UpdateCurrentUser updates the authenticated user's profile
// PUT /api/users/me
func UpdateCurrentUser(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		DisplayName *string   `json:"display_name"`
		Avatar      *string   `json:"avatar"`
		Bio         *string   `json:"bio"`
		Skills      *[]string `json:"skills"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Skills != nil {
		updates["skills"] = *req.Skills
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(user).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
		}
		database.GetDB().First(user, "id = ?", user.ID)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// SearchUsers searches profiles by username or display name
// GET /api/users/search?q=...
func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	q := database.GetDB().Model(&models.User{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("username LIKE ? OR display_name LIKE ?", like, like)
	}

	var users []models.User
	if err := q.Order("username ASC").Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to search users"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// GetUserProfile returns a public profile by ID
// GET /api/users/:id
func GetUserProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.GetDB().First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
