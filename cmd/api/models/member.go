package models

import (
	"fmt"

	"github.com/google/uuid"
	common "github.com/tribu-app/tribu/common/models"
)

// CreateMemberRequest is the POST /family-members payload
type CreateMemberRequest struct {
	ProfileID  *uuid.UUID `json:"profile_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	MaidenName *string    `json:"maiden_name"`
	Gender     string     `json:"gender"`
	BirthDate  *string    `json:"birth_date"`
	BirthPlace *string    `json:"birth_place"`
	DeathDate  *string    `json:"death_date"`
	DeathPlace *string    `json:"death_place"`
	Bio        *string    `json:"bio"`
	PhotoURL   *string    `json:"photo_url"`
	IsAlive    *bool      `json:"is_alive"`
}

// Validate checks required fields
func (r *CreateMemberRequest) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if r.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	return nil
}

// ToMember builds the domain record; is_alive defaults to true when omitted
func (r *CreateMemberRequest) ToMember() *common.FamilyMember {
	isAlive := true
	if r.IsAlive != nil {
		isAlive = *r.IsAlive
	}

	return &common.FamilyMember{
		ProfileID:  r.ProfileID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		MaidenName: r.MaidenName,
		Gender:     r.Gender,
		BirthDate:  r.BirthDate,
		BirthPlace: r.BirthPlace,
		DeathDate:  r.DeathDate,
		DeathPlace: r.DeathPlace,
		Bio:        r.Bio,
		PhotoURL:   r.PhotoURL,
		IsAlive:    isAlive,
	}
}
