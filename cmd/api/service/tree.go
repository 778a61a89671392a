package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tribu-app/tribu/common/logger"
	"github.com/tribu-app/tribu/common/models"
)

// TreeService answers "who is related to member X" queries: direct-relative
// buckets, the full family graph, and bounded multi-hop subgraphs.
type TreeService struct {
	members       MemberStore
	relationships RelationshipStore
	cache         TreeCache
	treeTTL       time.Duration
	log           *logger.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(members MemberStore, relationships RelationshipStore, cache TreeCache, treeTTL time.Duration, log *logger.Logger) *TreeService {
	return &TreeService{
		members:       members,
		relationships: relationships,
		cache:         cache,
		treeTTL:       treeTTL,
		log:           log,
	}
}

// GetMemberWithRelations returns a member's record plus their direct
// relatives bucketed as parents, children, spouses, siblings and others.
// A member with zero relationships gets empty buckets. Returns (nil, nil)
// when the id is unknown.
//
// Buckets read only outgoing edges: the mirrored pair written by the
// symmetric builder guarantees each relationship has an edge from this
// member, typed by what the other member is to them.
func (s *TreeService) GetMemberWithRelations(ctx context.Context, id uuid.UUID) (*models.MemberWithRelations, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	edges, err := s.relationships.GetByMemberID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &models.MemberWithRelations{
		FamilyMember: *member,
		Parents:      []*models.FamilyMember{},
		Children:     []*models.FamilyMember{},
		Spouses:      []*models.FamilyMember{},
		Siblings:     []*models.FamilyMember{},
		Others:       []*models.RelatedMember{},
	}

	for _, edge := range edges {
		if edge.FromMemberID != id {
			continue
		}

		relative, err := s.members.GetByID(ctx, edge.ToMemberID)
		if err != nil {
			return nil, err
		}
		if relative == nil {
			continue
		}

		switch edge.Type {
		case models.RelationParent:
			result.Parents = append(result.Parents, relative)
		case models.RelationChild:
			result.Children = append(result.Children, relative)
		case models.RelationSpouse:
			result.Spouses = append(result.Spouses, relative)
		case models.RelationSibling:
			result.Siblings = append(result.Siblings, relative)
		case models.RelationOther:
			result.Others = append(result.Others, &models.RelatedMember{
				Member:  relative,
				Type:    edge.Type,
				Details: edge.Details,
			})
		}
	}

	return result, nil
}

// GetFamilyTree returns the full graph: every member and every edge.
// The serialized response is cached until the next mutation.
func (s *TreeService) GetFamilyTree(ctx context.Context) (*models.FamilyGraph, error) {
	if s.cache != nil {
		if cached, found, err := s.cache.Get(ctx, familyTreeCacheKey); err == nil && found {
			graph := &models.FamilyGraph{}
			if err := json.Unmarshal([]byte(cached), graph); err == nil {
				return graph, nil
			}
			s.log.Warn("discarding unreadable tree cache entry")
		}
	}

	members, err := s.members.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	relationships, err := s.relationships.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	graph := newGraph(members, relationships)

	if s.cache != nil {
		if payload, err := json.Marshal(graph); err == nil {
			if err := s.cache.SetWithExpiry(ctx, familyTreeCacheKey, string(payload), s.treeTTL); err != nil {
				s.log.Warn("failed to cache family tree", "error", err)
			}
		}
	}

	return graph, nil
}

// GetMemberFamilyTree expands outward from a member through the relationship
// graph up to the requested degree and returns the induced subgraph. Degree 1
// is the members directly connected to the origin; each further degree adds
// the direct connections of the previous frontier. A visited set keeps the
// walk terminating on cyclic graphs and includes each member exactly once.
// Returns (nil, nil) when the id is unknown.
func (s *TreeService) GetMemberFamilyTree(ctx context.Context, id uuid.UUID, degree int) (*models.FamilyGraph, error) {
	if degree < 1 {
		return nil, ErrInvalidDegree
	}

	origin, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, nil
	}

	visited := map[uuid.UUID]*models.FamilyMember{id: origin}
	frontier := []uuid.UUID{id}

	for hop := 0; hop < degree && len(frontier) > 0; hop++ {
		var next []uuid.UUID

		for _, memberID := range frontier {
			edges, err := s.relationships.GetByMemberID(ctx, memberID)
			if err != nil {
				return nil, err
			}

			for _, edge := range edges {
				otherID := edge.ToMemberID
				if otherID == memberID {
					otherID = edge.FromMemberID
				}

				if _, seen := visited[otherID]; seen {
					continue
				}

				other, err := s.members.GetByID(ctx, otherID)
				if err != nil {
					return nil, err
				}
				if other == nil {
					continue
				}

				visited[otherID] = other
				next = append(next, otherID)
			}
		}

		frontier = next
	}

	ids := make([]uuid.UUID, 0, len(visited))
	members := make([]*models.FamilyMember, 0, len(visited))
	for memberID, member := range visited {
		ids = append(ids, memberID)
		members = append(members, member)
	}

	relationships, err := s.relationships.ListWithin(ctx, ids)
	if err != nil {
		return nil, err
	}

	return newGraph(members, relationships), nil
}

func newGraph(members []*models.FamilyMember, relationships []*models.FamilyRelationship) *models.FamilyGraph {
	if members == nil {
		members = []*models.FamilyMember{}
	}
	if relationships == nil {
		relationships = []*models.FamilyRelationship{}
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].LastName != members[j].LastName {
			return members[i].LastName < members[j].LastName
		}
		return members[i].FirstName < members[j].FirstName
	})

	return &models.FamilyGraph{
		Members:       members,
		Relationships: relationships,
	}
}
