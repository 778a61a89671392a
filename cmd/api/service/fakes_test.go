package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tribu-app/tribu/common/logger"
	"github.com/tribu-app/tribu/common/models"
	"github.com/tribu-app/tribu/common/repository"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// fakeMemberStore is an in-memory MemberStore
type fakeMemberStore struct {
	members map[uuid.UUID]*models.FamilyMember
	rels    *fakeRelationshipStore
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: make(map[uuid.UUID]*models.FamilyMember)}
}

func (s *fakeMemberStore) add(firstName, lastName string) *models.FamilyMember {
	m := &models.FamilyMember{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Gender:    "unknown",
		IsAlive:   true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.members[m.ID] = m
	return m
}

func (s *fakeMemberStore) GetAll(ctx context.Context) ([]*models.FamilyMember, error) {
	var all []*models.FamilyMember
	for _, m := range s.members {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		return all[i].FirstName < all[j].FirstName
	})
	return all, nil
}

func (s *fakeMemberStore) GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyMember, error) {
	return s.members[id], nil
}

func (s *fakeMemberStore) GetByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.FamilyMember, error) {
	var matched []*models.FamilyMember
	for _, m := range s.members {
		if m.ProfileID != nil && *m.ProfileID == profileID {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (s *fakeMemberStore) Search(ctx context.Context, term string) ([]*models.FamilyMember, error) {
	term = strings.ToLower(term)
	matches := func(field *string) bool {
		return field != nil && strings.Contains(strings.ToLower(*field), term)
	}

	var matched []*models.FamilyMember
	for _, m := range s.members {
		if strings.Contains(strings.ToLower(m.FirstName), term) ||
			strings.Contains(strings.ToLower(m.LastName), term) ||
			matches(m.MaidenName) || matches(m.BirthPlace) ||
			matches(m.DeathPlace) || matches(m.Bio) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (s *fakeMemberStore) Create(ctx context.Context, m *models.FamilyMember) error {
	copied := *m
	s.members[m.ID] = &copied
	return nil
}

func (s *fakeMemberStore) Update(ctx context.Context, m *models.FamilyMember) (bool, error) {
	if _, ok := s.members[m.ID]; !ok {
		return false, nil
	}
	copied := *m
	s.members[m.ID] = &copied
	return true, nil
}

func (s *fakeMemberStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.members[id]; !ok {
		return false, nil
	}
	delete(s.members, id)
	if s.rels != nil {
		s.rels.removeByMember(id)
	}
	return true, nil
}

// fakeRelationshipStore is an in-memory RelationshipStore. When members is
// set, edge writes enforce endpoint existence the way the foreign key does.
type fakeRelationshipStore struct {
	edges   []*models.FamilyRelationship
	members *fakeMemberStore
}

func newFakeRelationshipStore(members *fakeMemberStore) *fakeRelationshipStore {
	s := &fakeRelationshipStore{members: members}
	if members != nil {
		members.rels = s
	}
	return s
}

func (s *fakeRelationshipStore) checkEndpoints(rel *models.FamilyRelationship) error {
	if s.members == nil {
		return nil
	}
	for _, id := range []uuid.UUID{rel.FromMemberID, rel.ToMemberID} {
		if _, ok := s.members.members[id]; !ok {
			return fmt.Errorf("%w: %s", repository.ErrUnknownMember, id)
		}
	}
	return nil
}

func (s *fakeRelationshipStore) removeByMember(id uuid.UUID) {
	var kept []*models.FamilyRelationship
	for _, e := range s.edges {
		if e.FromMemberID != id && e.ToMemberID != id {
			kept = append(kept, e)
		}
	}
	s.edges = kept
}

func (s *fakeRelationshipStore) GetAll(ctx context.Context) ([]*models.FamilyRelationship, error) {
	return append([]*models.FamilyRelationship{}, s.edges...), nil
}

func (s *fakeRelationshipStore) GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyRelationship, error) {
	for _, e := range s.edges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (s *fakeRelationshipStore) GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*models.FamilyRelationship, error) {
	var matched []*models.FamilyRelationship
	for _, e := range s.edges {
		if e.FromMemberID == memberID || e.ToMemberID == memberID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *fakeRelationshipStore) ListWithin(ctx context.Context, memberIDs []uuid.UUID) ([]*models.FamilyRelationship, error) {
	within := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		within[id] = true
	}

	var matched []*models.FamilyRelationship
	for _, e := range s.edges {
		if within[e.FromMemberID] && within[e.ToMemberID] {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *fakeRelationshipStore) Create(ctx context.Context, rel *models.FamilyRelationship) error {
	if err := s.checkEndpoints(rel); err != nil {
		return err
	}
	copied := *rel
	s.edges = append(s.edges, &copied)
	return nil
}

func (s *fakeRelationshipStore) CreatePair(ctx context.Context, forward, backward *models.FamilyRelationship) error {
	// All-or-nothing, matching the transactional repository
	if err := s.checkEndpoints(forward); err != nil {
		return err
	}
	if err := s.checkEndpoints(backward); err != nil {
		return err
	}
	f, b := *forward, *backward
	s.edges = append(s.edges, &f, &b)
	return nil
}

func (s *fakeRelationshipStore) Update(ctx context.Context, rel *models.FamilyRelationship) (bool, error) {
	for i, e := range s.edges {
		if e.ID == rel.ID {
			if err := s.checkEndpoints(rel); err != nil {
				return false, err
			}
			copied := *rel
			s.edges[i] = &copied
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRelationshipStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	for i, e := range s.edges {
		if e.ID == id {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeTreeCache records cache traffic
type fakeTreeCache struct {
	data    map[string]string
	deletes int
}

func newFakeTreeCache() *fakeTreeCache {
	return &fakeTreeCache{data: make(map[string]string)}
}

func (c *fakeTreeCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := c.data[key]
	return val, ok, nil
}

func (c *fakeTreeCache) SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeTreeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.data, key)
	}
	c.deletes++
	return nil
}
