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

// MemberService handles family-member operations
type MemberService struct {
	members MemberStore
	cache   TreeCache
	log     *logger.Logger
}

// NewMemberService creates a new member service
func NewMemberService(members MemberStore, cache TreeCache, log *logger.Logger) *MemberService {
	return &MemberService{
		members: members,
		cache:   cache,
		log:     log,
	}
}

// List returns all members ordered by (last_name, first_name)
func (s *MemberService) List(ctx context.Context) ([]*models.FamilyMember, error) {
	return s.members.GetAll(ctx)
}

// Get returns a member by id, or (nil, nil) when the id is unknown
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*models.FamilyMember, error) {
	return s.members.GetByID(ctx, id)
}

// GetByProfile returns all members linked to an account profile
func (s *MemberService) GetByProfile(ctx context.Context, profileID uuid.UUID) ([]*models.FamilyMember, error) {
	return s.members.GetByProfileID(ctx, profileID)
}

// Search matches the term case-insensitively over names, places and bio
func (s *MemberService) Search(ctx context.Context, term string) ([]*models.FamilyMember, error) {
	return s.members.Search(ctx, term)
}

// Create assigns a fresh id and timestamps, persists the member and
// returns the stored record
func (s *MemberService) Create(ctx context.Context, m *models.FamilyMember) (*models.FamilyMember, error) {
	now := time.Now().UTC()
	m.ID = uuid.New()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	s.log.Info("created member", "member_id", m.ID, "last_name", m.LastName)

	return m, nil
}

// Update applies an RFC 7386 merge patch to the stored member: absent fields
// stay untouched, explicit nulls clear optional fields, id and created_at are
// immutable. updated_at is refreshed even when the patch changes nothing.
// Returns (nil, nil) when the id is unknown.
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, patch []byte) (*models.FamilyMember, error) {
	current, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal member: %w", err)
	}

	patchedJSON, err := jsonpatch.MergePatch(currentJSON, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	next := &models.FamilyMember{}
	if err := json.Unmarshal(patchedJSON, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	found, err := s.members.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.invalidateTree(ctx)
	s.log.Info("updated member", "member_id", next.ID)

	return next, nil
}

// Delete removes a member and every edge referencing it (all-or-nothing).
// Returns whether the member existed.
func (s *MemberService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := s.members.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if found {
		s.invalidateTree(ctx)
		s.log.Info("deleted member", "member_id", id)
	}

	return found, nil
}

func (s *MemberService) invalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, familyTreeCacheKey); err != nil {
		s.log.Warn("failed to invalidate tree cache", "error", err)
	}
}
