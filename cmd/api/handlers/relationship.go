package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/middleware"
	apimodels "github.com/tribu-app/tribu/cmd/api/models"
	"github.com/tribu-app/tribu/cmd/api/service"
	"github.com/tribu-app/tribu/common/models"
)

// RelationshipHandler handles relationship-edge requests, raw edges and
// symmetric pairs alike
type RelationshipHandler struct {
	relationships *service.RelationshipService
	audit         *service.AuditPublisher
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(relationships *service.RelationshipService, audit *service.AuditPublisher) *RelationshipHandler {
	return &RelationshipHandler{
		relationships: relationships,
		audit:         audit,
	}
}

// List returns all edges
// GET /api/v1/family-relationships
func (h *RelationshipHandler) List(c echo.Context) error {
	relationships, err := h.relationships.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, relationshipList(relationships))
}

// Get returns one edge
// GET /api/v1/family-relationships/:id
func (h *RelationshipHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid relationship id")
	}

	rel, err := h.relationships.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if rel == nil {
		return notFound(c, "relationship not found")
	}

	return c.JSON(http.StatusOK, rel)
}

// ByMember returns every edge where the member is either endpoint
// GET /api/v1/family-relationships/by-member/:memberId
func (h *RelationshipHandler) ByMember(c echo.Context) error {
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	relationships, err := h.relationships.GetByMember(c.Request().Context(), memberID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, relationshipList(relationships))
}

// Create adds one raw directed edge
// POST /api/v1/family-relationships
func (h *RelationshipHandler) Create(c echo.Context) error {
	req := &apimodels.CreateRelationshipRequest{}
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	rel, err := h.relationships.Create(ctx, req.ToRelationship())
	if err != nil {
		return serviceError(c, err)
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.create", rel.ID.String(),
		fmt.Sprintf("created %s edge %s -> %s", rel.Type, rel.FromMemberID, rel.ToMemberID))

	return c.JSON(http.StatusCreated, rel)
}

// CreateParentChild records a parent/child pair
// POST /api/v1/family-relationships/parent-child
func (h *RelationshipHandler) CreateParentChild(c echo.Context) error {
	req := &apimodels.CreateParentChildRequest{}
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	pair, err := h.relationships.AddParentChild(ctx, req.ParentID, req.ChildID, req.Details)
	if err != nil {
		return serviceError(c, err)
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.create_pair", pair[0].ID.String(),
		fmt.Sprintf("linked parent %s and child %s", req.ParentID, req.ChildID))

	return c.JSON(http.StatusCreated, map[string][]*models.FamilyRelationship{"relationships": pair})
}

// CreateSiblings records a sibling pair
// POST /api/v1/family-relationships/siblings
func (h *RelationshipHandler) CreateSiblings(c echo.Context) error {
	req := &apimodels.CreateSiblingsRequest{}
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	pair, err := h.relationships.AddSibling(ctx, req.MemberAID, req.MemberBID, req.Details)
	if err != nil {
		return serviceError(c, err)
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.create_pair", pair[0].ID.String(),
		fmt.Sprintf("linked siblings %s and %s", req.MemberAID, req.MemberBID))

	return c.JSON(http.StatusCreated, map[string][]*models.FamilyRelationship{"relationships": pair})
}

// CreateSpouses records a spouse pair
// POST /api/v1/family-relationships/spouses
func (h *RelationshipHandler) CreateSpouses(c echo.Context) error {
	req := &apimodels.CreateSpousesRequest{}
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	pair, err := h.relationships.AddSpouse(ctx, req.MemberAID, req.MemberBID, req.StartDate, req.EndDate, req.Details)
	if err != nil {
		return serviceError(c, err)
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.create_pair", pair[0].ID.String(),
		fmt.Sprintf("linked spouses %s and %s", req.MemberAID, req.MemberBID))

	return c.JSON(http.StatusCreated, map[string][]*models.FamilyRelationship{"relationships": pair})
}

// Patch applies a merge patch to an edge
// PATCH /api/v1/family-relationships/:id
func (h *RelationshipHandler) Patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid relationship id")
	}

	patch, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "unreadable request body")
	}

	ctx := c.Request().Context()
	rel, err := h.relationships.Update(ctx, id, patch)
	if err != nil {
		return serviceError(c, err)
	}
	if rel == nil {
		return notFound(c, "relationship not found")
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.update", rel.ID.String(),
		"updated relationship fields")

	return c.JSON(http.StatusOK, rel)
}

// Delete removes one edge
// DELETE /api/v1/family-relationships/:id
func (h *RelationshipHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid relationship id")
	}

	ctx := c.Request().Context()
	found, err := h.relationships.Delete(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		return notFound(c, "relationship not found")
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_relationship.delete", id.String(),
		"deleted relationship edge")

	return c.NoContent(http.StatusNoContent)
}

func relationshipList(rels []*models.FamilyRelationship) []*models.FamilyRelationship {
	if rels == nil {
		return []*models.FamilyRelationship{}
	}
	return rels
}
