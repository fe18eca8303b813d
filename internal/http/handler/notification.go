package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"qaportal/internal/http/middleware"
	"qaportal/internal/service"
)

// ListNotifications returns the acting user's notifications, newest first.
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		if actor.ID == "" {
			return unauthenticated(c)
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListForUser(c.UserContext(), actor.ID, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UnreadNotificationCount returns the acting user's unread counter, used
// for the navigation badge.
func UnreadNotificationCount(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		if actor.ID == "" {
			return unauthenticated(c)
		}
		n, err := svc.CountUnread(c.UserContext(), actor.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"unread": n})
	}
}

// MarkNotificationRead marks one of the acting user's notifications read.
// Notifications belonging to other users read as absent.
func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		if actor.ID == "" {
			return unauthenticated(c)
		}
		if err := svc.MarkRead(c.UserContext(), c.Params("id"), actor.ID); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// MarkAllNotificationsRead marks every unread notification of the acting
// user read.
func MarkAllNotificationsRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		if actor.ID == "" {
			return unauthenticated(c)
		}
		if err := svc.MarkAllRead(c.UserContext(), actor.ID); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
