package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/service"
)

// defaultTreeDegree bounds the member-centric tree view when the caller
// does not ask for a specific depth
const defaultTreeDegree = 2

// TreeHandler handles family-tree and relative-lookup requests
type TreeHandler struct {
	tree *service.TreeService
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(tree *service.TreeService) *TreeHandler {
	return &TreeHandler{tree: tree}
}

// FullTree returns every member and every edge
// GET /api/v1/family-tree
func (h *TreeHandler) FullTree(c echo.Context) error {
	graph, err := h.tree.GetFamilyTree(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, graph)
}

// MemberRelations returns a member plus their direct relatives, bucketed
// GET /api/v1/family-members/:id/relations
func (h *TreeHandler) MemberRelations(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	relations, err := h.tree.GetMemberWithRelations(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if relations == nil {
		return notFound(c, "member not found")
	}

	return c.JSON(http.StatusOK, relations)
}

// MemberTree returns the bounded subgraph around one member
// GET /api/v1/family-members/:id/tree?degree=2
func (h *TreeHandler) MemberTree(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	degree := defaultTreeDegree
	if raw := c.QueryParam("degree"); raw != "" {
		degree, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "degree must be an integer")
		}
	}

	graph, err := h.tree.GetMemberFamilyTree(c.Request().Context(), id, degree)
	if err != nil {
		return serviceError(c, err)
	}
	if graph == nil {
		return notFound(c, "member not found")
	}

	return c.JSON(http.StatusOK, graph)
}
