package models

import (
	"fmt"

	"github.com/google/uuid"
	common "github.com/tribu-app/tribu/common/models"
)

// CreateRelationshipRequest is the POST /family-relationships payload
// for one raw directed edge
type CreateRelationshipRequest struct {
	FromMemberID uuid.UUID               `json:"from_member_id"`
	ToMemberID   uuid.UUID               `json:"to_member_id"`
	Type         common.RelationshipType `json:"relationship_type"`
	Details      *string                 `json:"relationship_details"`
	StartDate    *string                 `json:"start_date"`
	EndDate      *string                 `json:"end_date"`
}

// Validate checks required fields
func (r *CreateRelationshipRequest) Validate() error {
	if r.FromMemberID == uuid.Nil {
		return fmt.Errorf("from_member_id is required")
	}
	if r.ToMemberID == uuid.Nil {
		return fmt.Errorf("to_member_id is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("relationship_type must be one of parent, child, spouse, sibling, other")
	}
	return nil
}

// ToRelationship builds the domain edge
func (r *CreateRelationshipRequest) ToRelationship() *common.FamilyRelationship {
	return &common.FamilyRelationship{
		FromMemberID: r.FromMemberID,
		ToMemberID:   r.ToMemberID,
		Type:         r.Type,
		Details:      r.Details,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

// CreateParentChildRequest is the POST /family-relationships/parent-child payload
type CreateParentChildRequest struct {
	ParentID uuid.UUID `json:"parent_id"`
	ChildID  uuid.UUID `json:"child_id"`
	Details  *string   `json:"relationship_details"`
}

// Validate checks required fields
func (r *CreateParentChildRequest) Validate() error {
	if r.ParentID == uuid.Nil {
		return fmt.Errorf("parent_id is required")
	}
	if r.ChildID == uuid.Nil {
		return fmt.Errorf("child_id is required")
	}
	return nil
}

// CreateSiblingsRequest is the POST /family-relationships/siblings payload
type CreateSiblingsRequest struct {
	MemberAID uuid.UUID `json:"member_a_id"`
	MemberBID uuid.UUID `json:"member_b_id"`
	Details   *string   `json:"relationship_details"`
}

// Validate checks required fields
func (r *CreateSiblingsRequest) Validate() error {
	if r.MemberAID == uuid.Nil {
		return fmt.Errorf("member_a_id is required")
	}
	if r.MemberBID == uuid.Nil {
		return fmt.Errorf("member_b_id is required")
	}
	return nil
}

// CreateSpousesRequest is the POST /family-relationships/spouses payload
type CreateSpousesRequest struct {
	MemberAID uuid.UUID `json:"member_a_id"`
	MemberBID uuid.UUID `json:"member_b_id"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	Details   *string   `json:"relationship_details"`
}

// Validate checks required fields
func (r *CreateSpousesRequest) Validate() error {
	if r.MemberAID == uuid.Nil {
		return fmt.Errorf("member_a_id is required")
	}
	if r.MemberBID == uuid.Nil {
		return fmt.Errorf("member_b_id is required")
	}
	return nil
}
