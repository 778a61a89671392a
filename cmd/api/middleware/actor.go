package middleware

import (
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ActorKey is the context key for the acting user's id
const ActorKey ContextKey = "actor_id"

// ExtractActor pulls the X-User-ID header set by the authentication gateway
// and stores it in the request context. The audit trail attaches it to every
// mutating operation; an empty actor is allowed and recorded as "anonymous".
func ExtractActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID := c.Request().Header.Get("X-User-ID")
			if actorID != "" {
				c.Set(string(ActorKey), actorID)
			}
			return next(c)
		}
	}
}

// GetActor retrieves the actor id from the request context,
// defaulting to "anonymous"
func GetActor(c echo.Context) string {
	actorID := c.Get(string(ActorKey))
	if actorID == nil {
		return "anonymous"
	}
	return actorID.(string)
}
