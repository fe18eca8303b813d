package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qaportal/internal/http/middleware"
	"qaportal/internal/repository"
	"qaportal/internal/service"
)

type createUserRequest struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"password_confirm"`
	Role            string  `json:"role"`
	DepartmentID    *string `json:"department_id"`
	ProgramID       *string `json:"program_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
}

// CreateUser registers a portal account.
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Create(c.UserContext(), service.CreateUserInput{
			Username:        req.Username,
			Email:           req.Email,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
			Role:            req.Role,
			DepartmentID:    req.DepartmentID,
			ProgramID:       req.ProgramID,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// ListUsers returns active accounts matching the query filters.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.UserFilter{
			Search:       c.Query("search"),
			Role:         c.Query("role"),
			DepartmentID: c.Query("department_id"),
		}
		users, err := svc.List(c.UserContext(), f)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

// GetUser returns a single account by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(u)
	}
}

// DeleteUser removes an account. The acting user cannot remove themselves.
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		if actor.ID == "" {
			return unauthenticated(c)
		}
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), actor, id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListActivity returns the portal-wide audit trail, newest first.
func ListActivity(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
