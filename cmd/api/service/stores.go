package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tribu-app/tribu/common/models"
)

var (
	// ErrInvalidDegree rejects non-positive traversal depths
	ErrInvalidDegree = errors.New("traversal degree must be at least 1")

	// ErrInvalidRelationshipType rejects edge types outside the enumerated set
	ErrInvalidRelationshipType = errors.New("invalid relationship type")

	// ErrInvalidPatch rejects malformed merge-patch payloads
	ErrInvalidPatch = errors.New("invalid merge patch payload")
)

// MemberStore is the persistence contract for family-member nodes,
// implemented by repository.MemberRepository.
type MemberStore interface {
	GetAll(ctx context.Context) ([]*models.FamilyMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyMember, error)
	GetByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.FamilyMember, error)
	Search(ctx context.Context, term string) ([]*models.FamilyMember, error)
	Create(ctx context.Context, m *models.FamilyMember) error
	Update(ctx context.Context, m *models.FamilyMember) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// RelationshipStore is the persistence contract for relationship edges,
// implemented by repository.RelationshipRepository.
type RelationshipStore interface {
	GetAll(ctx context.Context) ([]*models.FamilyRelationship, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyRelationship, error)
	GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*models.FamilyRelationship, error)
	ListWithin(ctx context.Context, memberIDs []uuid.UUID) ([]*models.FamilyRelationship, error)
	Create(ctx context.Context, rel *models.FamilyRelationship) error
	CreatePair(ctx context.Context, forward, backward *models.FamilyRelationship) error
	Update(ctx context.Context, rel *models.FamilyRelationship) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
