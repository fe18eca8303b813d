package middleware

import (
	"github.com/gofiber/fiber/v2"

	"qaportal/internal/model"
)

const (
	// ActorIDHeader carries the authenticated user's id, set by the
	// gateway in front of this service.
	ActorIDHeader = "X-User-ID"
	// ActorRoleHeader carries the authenticated user's role.
	ActorRoleHeader = "X-User-Role"
	// ActorNameHeader carries the authenticated user's display name.
	ActorNameHeader = "X-User-Name"

	// ActorLocalKey is the key the actor is stored under in Fiber's
	// context locals.
	ActorLocalKey = "actor"
)

// Identity reads the gateway identity headers into a model.Actor and stores
// it in context locals. It never rejects: handlers that require an actor
// enforce that themselves.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := model.Actor{
			ID:       c.Get(ActorIDHeader),
			Role:     c.Get(ActorRoleHeader),
			FullName: c.Get(ActorNameHeader),
		}
		c.Locals(ActorLocalKey, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by Identity. The zero Actor means
// the request carried no identity.
func ActorFromCtx(c *fiber.Ctx) model.Actor {
	if v := c.Locals(ActorLocalKey); v != nil {
		if a, ok := v.(model.Actor); ok {
			return a
		}
	}
	return model.Actor{}
}
