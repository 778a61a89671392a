package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/tribu-app/tribu/common/logger"
	"github.com/tribu-app/tribu/common/models"
)

// RelationshipService handles raw edge operations and builds symmetric
// relationship pairs. Bidirectional relationships are stored as two
// mirrored rows written in one transaction, so either endpoint sees the
// relationship without extra traversal logic.
type RelationshipService struct {
	relationships RelationshipStore
	cache         TreeCache
	log           *logger.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(relationships RelationshipStore, cache TreeCache, log *logger.Logger) *RelationshipService {
	return &RelationshipService{
		relationships: relationships,
		cache:         cache,
		log:           log,
	}
}

// List returns all edges
func (s *RelationshipService) List(ctx context.Context) ([]*models.FamilyRelationship, error) {
	return s.relationships.GetAll(ctx)
}

// Get returns an edge by id, or (nil, nil) when the id is unknown
func (s *RelationshipService) Get(ctx context.Context, id uuid.UUID) (*models.FamilyRelationship, error) {
	return s.relationships.GetByID(ctx, id)
}

// GetByMember returns every edge where the member is either endpoint
func (s *RelationshipService) GetByMember(ctx context.Context, memberID uuid.UUID) ([]*models.FamilyRelationship, error) {
	return s.relationships.GetByMemberID(ctx, memberID)
}

// Create persists one directed edge
func (s *RelationshipService) Create(ctx context.Context, rel *models.FamilyRelationship) (*models.FamilyRelationship, error) {
	if !rel.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRelationshipType, rel.Type)
	}

	now := time.Now().UTC()
	rel.ID = uuid.New()
	rel.CreatedAt = now
	rel.UpdatedAt = now

	if err := s.relationships.Create(ctx, rel); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	s.log.Info("created relationship",
		"relationship_id", rel.ID,
		"from", rel.FromMemberID,
		"to", rel.ToMemberID,
		"type", rel.Type,
	)

	return rel, nil
}

// AddParentChild records a parent/child relationship as the mirrored pair
// (parent -> child, "child") and (child -> parent, "parent"), atomically.
// Returns both created edges.
func (s *RelationshipService) AddParentChild(ctx context.Context, parentID, childID uuid.UUID, details *string) ([]*models.FamilyRelationship, error) {
	forward := newEdge(parentID, childID, models.RelationChild, details)
	backward := newEdge(childID, parentID, models.RelationParent, details)

	return s.createPair(ctx, forward, backward)
}

// AddSibling records a sibling relationship as two mirrored "sibling"
// edges, atomically. Returns both created edges.
func (s *RelationshipService) AddSibling(ctx context.Context, memberAID, memberBID uuid.UUID, details *string) ([]*models.FamilyRelationship, error) {
	forward := newEdge(memberAID, memberBID, models.RelationSibling, details)
	backward := newEdge(memberBID, memberAID, models.RelationSibling, details)

	return s.createPair(ctx, forward, backward)
}

// AddSpouse records a spouse relationship as two mirrored "spouse" edges
// carrying the same start/end dates, atomically. Returns both created edges.
func (s *RelationshipService) AddSpouse(ctx context.Context, memberAID, memberBID uuid.UUID, startDate, endDate, details *string) ([]*models.FamilyRelationship, error) {
	forward := newEdge(memberAID, memberBID, models.RelationSpouse, details)
	backward := newEdge(memberBID, memberAID, models.RelationSpouse, details)

	forward.StartDate, backward.StartDate = startDate, startDate
	forward.EndDate, backward.EndDate = endDate, endDate

	return s.createPair(ctx, forward, backward)
}

// Update applies an RFC 7386 merge patch to the stored edge. id and
// created_at are immutable; updated_at is always refreshed. Returns
// (nil, nil) when the id is unknown.
func (s *RelationshipService) Update(ctx context.Context, id uuid.UUID, patch []byte) (*models.FamilyRelationship, error) {
	current, err := s.relationships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal relationship: %w", err)
	}

	patchedJSON, err := jsonpatch.MergePatch(currentJSON, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	next := &models.FamilyRelationship{}
	if err := json.Unmarshal(patchedJSON, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	if !next.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRelationshipType, next.Type)
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	found, err := s.relationships.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.invalidateTree(ctx)
	s.log.Info("updated relationship", "relationship_id", next.ID)

	return next, nil
}

// Delete removes one edge. Returns whether the edge existed.
func (s *RelationshipService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := s.relationships.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.invalidateTree(ctx)
		s.log.Info("deleted relationship", "relationship_id", id)
	}

	return found, nil
}

func (s *RelationshipService) createPair(ctx context.Context, forward, backward *models.FamilyRelationship) ([]*models.FamilyRelationship, error) {
	if err := s.relationships.CreatePair(ctx, forward, backward); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	s.log.Info("created relationship pair",
		"forward_id", forward.ID,
		"backward_id", backward.ID,
		"type", forward.Type,
	)

	return []*models.FamilyRelationship{forward, backward}, nil
}

func (s *RelationshipService) invalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, familyTreeCacheKey); err != nil {
		s.log.Warn("failed to invalidate tree cache", "error", err)
	}
}

func newEdge(from, to uuid.UUID, relType models.RelationshipType, details *string) *models.FamilyRelationship {
	now := time.Now().UTC()
	return &models.FamilyRelationship{
		ID:           uuid.New(),
		FromMemberID: from,
		ToMemberID:   to,
		Type:         relType,
		Details:      details,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
