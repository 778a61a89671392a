package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/container"
	"github.com/tribu-app/tribu/cmd/api/handlers"
)

// RegisterRelationshipRoutes registers all relationship-edge routes
func RegisterRelationshipRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewRelationshipHandler(c.RelationshipService, c.Audit)

	relationships := e.Group("/api/v1/family-relationships")
	{
		relationships.GET("", h.List)                            // GET /api/v1/family-relationships
		relationships.POST("", h.Create)                         // POST /api/v1/family-relationships
		relationships.POST("/parent-child", h.CreateParentChild) // POST /api/v1/family-relationships/parent-child
		relationships.POST("/siblings", h.CreateSiblings)        // POST /api/v1/family-relationships/siblings
		relationships.POST("/spouses", h.CreateSpouses)          // POST /api/v1/family-relationships/spouses
		relationships.GET("/by-member/:memberId", h.ByMember)    // GET /api/v1/family-relationships/by-member/:memberId
		relationships.GET("/:id", h.Get)                         // GET /api/v1/family-relationships/:id
		relationships.PATCH("/:id", h.Patch)                     // PATCH /api/v1/family-relationships/:id
		relationships.DELETE("/:id", h.Delete)                   // DELETE /api/v1/family-relationships/:id
	}
}
