package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/container"
	"github.com/tribu-app/tribu/cmd/api/handlers"
)

// RegisterTreeRoutes registers the whole-tree route. The member-centric
// tree views live under /family-members and are registered there.
func RegisterTreeRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewTreeHandler(c.TreeService)

	e.GET("/api/v1/family-tree", h.FullTree) // GET /api/v1/family-tree
}
