package models

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember represents one individual in the association's family tree,
// living or deceased, not necessarily linked to a user account.
// Maps to: family_member table
type FamilyMember struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Optional link to an account profile (a member may have no account)
	ProfileID *uuid.UUID `db:"profile_id" json:"profile_id,omitempty"`

	FirstName  string  `db:"first_name" json:"first_name"`
	LastName   string  `db:"last_name" json:"last_name"`
	MaidenName *string `db:"maiden_name" json:"maiden_name,omitempty"`
	Gender     string  `db:"gender" json:"gender"`

	// Dates are ISO-8601 day strings ("2010-05-01"), stored verbatim
	BirthDate  *string `db:"birth_date" json:"birth_date,omitempty"`
	BirthPlace *string `db:"birth_place" json:"birth_place,omitempty"`
	DeathDate  *string `db:"death_date" json:"death_date,omitempty"`
	DeathPlace *string `db:"death_place" json:"death_place,omitempty"`

	Bio      *string `db:"bio" json:"bio,omitempty"`
	PhotoURL *string `db:"photo_url" json:"photo_url,omitempty"`

	// Not cross-validated against death_date; the store persists whatever
	// combination the caller sends
	IsAlive bool `db:"is_alive" json:"is_alive"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
