package models

import (
	"time"

	"github.com/google/uuid"
)

// RelationshipType enumerates the allowed edge types. The type names what
// the to-member is relative to the from-member: an edge (A -> B, "child")
// records that B is A's child.
type RelationshipType string

const (
	RelationParent  RelationshipType = "parent"
	RelationChild   RelationshipType = "child"
	RelationSpouse  RelationshipType = "spouse"
	RelationSibling RelationshipType = "sibling"
	RelationOther   RelationshipType = "other"
)

// Valid reports whether t is one of the enumerated relationship types
func (t RelationshipType) Valid() bool {
	switch t {
	case RelationParent, RelationChild, RelationSpouse, RelationSibling, RelationOther:
		return true
	}
	return false
}

// FamilyRelationship is a directed, typed edge between two family members.
// Conceptually symmetric relationships (parent/child, sibling, spouse) are
// stored as two mirrored rows so every query stays "edges from X".
// Maps to: family_relationship table
type FamilyRelationship struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	FromMemberID uuid.UUID        `db:"from_member_id" json:"from_member_id"`
	ToMemberID   uuid.UUID        `db:"to_member_id" json:"to_member_id"`
	Type         RelationshipType `db:"relationship_type" json:"relationship_type"`

	// Free text, used especially for "other"
	Details *string `db:"relationship_details" json:"relationship_details,omitempty"`

	// Used for spouse relationships (ISO-8601 day strings)
	StartDate *string `db:"start_date" json:"start_date,omitempty"`
	EndDate   *string `db:"end_date" json:"end_date,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
