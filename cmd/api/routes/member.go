package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/container"
	"github.com/tribu-app/tribu/cmd/api/handlers"
)

// RegisterMemberRoutes registers all family-member routes
func RegisterMemberRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewMemberHandler(c.MemberService, c.Audit)
	th := handlers.NewTreeHandler(c.TreeService)

	members := e.Group("/api/v1/family-members")
	{
		members.GET("", h.List)                            // GET /api/v1/family-members
		members.POST("", h.Create)                         // POST /api/v1/family-members
		members.GET("/search", h.Search)                   // GET /api/v1/family-members/search?q=
		members.GET("/by-profile/:profileId", h.ByProfile) // GET /api/v1/family-members/by-profile/:profileId
		members.GET("/:id", h.Get)                         // GET /api/v1/family-members/:id
		members.PATCH("/:id", h.Patch)                     // PATCH /api/v1/family-members/:id
		members.DELETE("/:id", h.Delete)                   // DELETE /api/v1/family-members/:id
		members.GET("/:id/relations", th.MemberRelations)  // GET /api/v1/family-members/:id/relations
		members.GET("/:id/tree", th.MemberTree)            // GET /api/v1/family-members/:id/tree?degree=
	}
}
