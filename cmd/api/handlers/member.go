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

// MemberHandler handles family-member requests
type MemberHandler struct {
	members *service.MemberService
	audit   *service.AuditPublisher
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members *service.MemberService, audit *service.AuditPublisher) *MemberHandler {
	return &MemberHandler{
		members: members,
		audit:   audit,
	}
}

// List returns all members
// GET /api/v1/family-members
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.members.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, memberList(members))
}

// Get returns one member
// GET /api/v1/family-members/:id
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	member, err := h.members.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if member == nil {
		return notFound(c, "member not found")
	}

	return c.JSON(http.StatusOK, member)
}

// ByProfile returns all members linked to an account profile
// GET /api/v1/family-members/by-profile/:profileId
func (h *MemberHandler) ByProfile(c echo.Context) error {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		return badRequest(c, "invalid profile id")
	}

	members, err := h.members.GetByProfile(c.Request().Context(), profileID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, memberList(members))
}

// Search matches members by name, place or bio
// GET /api/v1/family-members/search?q=term
func (h *MemberHandler) Search(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return badRequest(c, "query parameter q is required")
	}

	members, err := h.members.Search(c.Request().Context(), term)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, memberList(members))
}

// Create adds a new member
// POST /api/v1/family-members
func (h *MemberHandler) Create(c echo.Context) error {
	req := &apimodels.CreateMemberRequest{}
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	member, err := h.members.Create(ctx, req.ToMember())
	if err != nil {
		return serviceError(c, err)
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_member.create", member.ID.String(),
		fmt.Sprintf("created member %s %s", member.FirstName, member.LastName))

	return c.JSON(http.StatusCreated, member)
}

// Patch applies a merge patch to a member
// PATCH /api/v1/family-members/:id
func (h *MemberHandler) Patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	patch, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "unreadable request body")
	}

	ctx := c.Request().Context()
	member, err := h.members.Update(ctx, id, patch)
	if err != nil {
		return serviceError(c, err)
	}
	if member == nil {
		return notFound(c, "member not found")
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_member.update", member.ID.String(),
		"updated member fields")

	return c.JSON(http.StatusOK, member)
}

// Delete removes a member and all edges referencing it
// DELETE /api/v1/family-members/:id
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	ctx := c.Request().Context()
	found, err := h.members.Delete(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		return notFound(c, "member not found")
	}

	h.audit.Record(ctx, middleware.GetActor(c), "family_member.delete", id.String(),
		"deleted member and all referencing relationships")

	return c.NoContent(http.StatusNoContent)
}

func memberList(members []*models.FamilyMember) []*models.FamilyMember {
	if members == nil {
		return []*models.FamilyMember{}
	}
	return members
}
