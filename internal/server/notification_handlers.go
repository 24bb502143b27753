package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns a page of the authenticated user's
// notifications with total and unread counts.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	feed, err := s.notificationService.ListNotifications(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// MarkNotificationRead flips one of the user's notifications to read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead flips all of the user's unread notifications.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
