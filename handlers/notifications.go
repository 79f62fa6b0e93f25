// handlers/notifications.go - Notification inbox handlers
package handlers

import (
	"hackmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications lists the caller's notifications, newest first
// GET /api/notifications
func ListNotifications(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	notifications, err := notificationService.List(c.UserContext(), userID, queryLimit(c, 50))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// UnreadCount returns the number of unread notifications
// GET /api/notifications/unread
func UnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	count, err := notificationService.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// MarkNotificationRead marks one notification as read
// PUT /api/notifications/:id/read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := notificationService.MarkRead(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Notification marked read",
	})
}

// MarkAllNotificationsRead marks everything as read
// PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := notificationService.MarkAllRead(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "All notifications marked read",
	})
}
