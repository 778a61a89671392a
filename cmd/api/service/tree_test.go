package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tribu-app/tribu/common/models"
)

func newTreeFixture(t *testing.T) (*fakeMemberStore, *RelationshipService, *TreeService) {
	t.Helper()
	members := newFakeMemberStore()
	rels := newFakeRelationshipStore(members)
	relService := NewRelationshipService(rels, nil, testLogger())
	treeService := NewTreeService(members, rels, nil, 0, testLogger())
	return members, relService, treeService
}

func TestGetMemberWithRelations_ParentChildScenario(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	jean := members.add("Jean", "Koum")
	awa := members.add("Awa", "Koum")

	_, err := relService.AddParentChild(ctx, jean.ID, awa.ID, nil)
	require.NoError(t, err)

	child, err := treeService.GetMemberWithRelations(ctx, awa.ID)
	require.NoError(t, err)
	require.NotNil(t, child)
	require.Len(t, child.Parents, 1)
	assert.Equal(t, jean.ID, child.Parents[0].ID)
	assert.Empty(t, child.Children)
	assert.Empty(t, child.Spouses)
	assert.Empty(t, child.Siblings)
	assert.Empty(t, child.Others)

	parent, err := treeService.GetMemberWithRelations(ctx, jean.ID)
	require.NoError(t, err)
	require.NotNil(t, parent)
	require.Len(t, parent.Children, 1)
	assert.Equal(t, awa.ID, parent.Children[0].ID)
	assert.Empty(t, parent.Parents)
}

func TestGetMemberWithRelations_SpousesSeeEachOther(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	a := members.add("Jean", "Koum")
	b := members.add("Awa", "Koum")

	start := "2010-05-01"
	_, err := relService.AddSpouse(ctx, a.ID, b.ID, &start, nil, nil)
	require.NoError(t, err)

	for _, pair := range [][2]uuid.UUID{{a.ID, b.ID}, {b.ID, a.ID}} {
		relations, err := treeService.GetMemberWithRelations(ctx, pair[0])
		require.NoError(t, err)
		require.NotNil(t, relations)
		require.Len(t, relations.Spouses, 1)
		assert.Equal(t, pair[1], relations.Spouses[0].ID)
	}
}

func TestGetMemberWithRelations_OthersCarryEdgeDetails(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	a := members.add("Jean", "Koum")
	b := members.add("Paul", "Mbarga")

	details := "godfather"
	_, err := relService.Create(ctx, &models.FamilyRelationship{
		FromMemberID: a.ID,
		ToMemberID:   b.ID,
		Type:         models.RelationOther,
		Details:      &details,
	})
	require.NoError(t, err)

	relations, err := treeService.GetMemberWithRelations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, relations.Others, 1)
	assert.Equal(t, b.ID, relations.Others[0].Member.ID)
	assert.Equal(t, models.RelationOther, relations.Others[0].Type)
	require.NotNil(t, relations.Others[0].Details)
	assert.Equal(t, "godfather", *relations.Others[0].Details)
}

func TestGetMemberWithRelations_NoRelationships(t *testing.T) {
	ctx := context.Background()
	members, _, treeService := newTreeFixture(t)

	loner := members.add("Solo", "Ngan")

	relations, err := treeService.GetMemberWithRelations(ctx, loner.ID)
	require.NoError(t, err)
	require.NotNil(t, relations)
	assert.NotNil(t, relations.Parents)
	assert.Empty(t, relations.Parents)
	assert.Empty(t, relations.Children)
	assert.Empty(t, relations.Spouses)
	assert.Empty(t, relations.Siblings)
	assert.Empty(t, relations.Others)
}

func TestGetMemberWithRelations_UnknownMember(t *testing.T) {
	ctx := context.Background()
	_, _, treeService := newTreeFixture(t)

	relations, err := treeService.GetMemberWithRelations(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, relations)
}

func TestGetMemberFamilyTree_DegreeBounds(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	// Chain: a - b - c
	a := members.add("Ama", "Koum")
	b := members.add("Bi", "Koum")
	c := members.add("Chantal", "Koum")

	_, err := relService.AddSibling(ctx, a.ID, b.ID, nil)
	require.NoError(t, err)
	_, err = relService.AddSibling(ctx, b.ID, c.ID, nil)
	require.NoError(t, err)

	// Degree 1 from a: only a and b, and only the a<->b edges
	graph, err := treeService.GetMemberFamilyTree(ctx, a.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, graph)
	assert.Len(t, graph.Members, 2)
	assert.Len(t, graph.Relationships, 2)
	for _, m := range graph.Members {
		assert.NotEqual(t, c.ID, m.ID)
	}

	// Degree 2 from a: the whole chain
	graph, err = treeService.GetMemberFamilyTree(ctx, a.ID, 2)
	require.NoError(t, err)
	assert.Len(t, graph.Members, 3)
	assert.Len(t, graph.Relationships, 4)
}

func TestGetMemberFamilyTree_CycleTerminates(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	// Sibling ring: a - b - c - a
	a := members.add("Ama", "Koum")
	b := members.add("Bi", "Koum")
	c := members.add("Chantal", "Koum")

	_, err := relService.AddSibling(ctx, a.ID, b.ID, nil)
	require.NoError(t, err)
	_, err = relService.AddSibling(ctx, b.ID, c.ID, nil)
	require.NoError(t, err)
	_, err = relService.AddSibling(ctx, c.ID, a.ID, nil)
	require.NoError(t, err)

	graph, err := treeService.GetMemberFamilyTree(ctx, a.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, graph)

	require.Len(t, graph.Members, 3)
	seen := map[uuid.UUID]int{}
	for _, m := range graph.Members {
		seen[m.ID]++
	}
	assert.Equal(t, 1, seen[a.ID])
	assert.Equal(t, 1, seen[b.ID])
	assert.Equal(t, 1, seen[c.ID])
	assert.Len(t, graph.Relationships, 6)
}

func TestGetMemberFamilyTree_NoRelationships(t *testing.T) {
	ctx := context.Background()
	members, _, treeService := newTreeFixture(t)

	loner := members.add("Solo", "Ngan")

	graph, err := treeService.GetMemberFamilyTree(ctx, loner.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, graph)
	require.Len(t, graph.Members, 1)
	assert.Equal(t, loner.ID, graph.Members[0].ID)
	assert.Empty(t, graph.Relationships)
}

func TestGetMemberFamilyTree_InvalidDegree(t *testing.T) {
	ctx := context.Background()
	members, _, treeService := newTreeFixture(t)

	m := members.add("Ama", "Koum")

	for _, degree := range []int{0, -1, -7} {
		_, err := treeService.GetMemberFamilyTree(ctx, m.ID, degree)
		assert.ErrorIs(t, err, ErrInvalidDegree, "degree %d", degree)
	}
}

func TestGetMemberFamilyTree_UnknownMember(t *testing.T) {
	ctx := context.Background()
	_, _, treeService := newTreeFixture(t)

	graph, err := treeService.GetMemberFamilyTree(ctx, uuid.New(), 2)
	require.NoError(t, err)
	assert.Nil(t, graph)
}

func TestGetFamilyTree_ReturnsEverything(t *testing.T) {
	ctx := context.Background()
	members, relService, treeService := newTreeFixture(t)

	a := members.add("Ama", "Koum")
	b := members.add("Bi", "Koum")
	members.add("Solo", "Ngan")

	_, err := relService.AddSpouse(ctx, a.ID, b.ID, nil, nil, nil)
	require.NoError(t, err)

	graph, err := treeService.GetFamilyTree(ctx)
	require.NoError(t, err)
	assert.Len(t, graph.Members, 3)
	assert.Len(t, graph.Relationships, 2)
}

func TestGetFamilyTree_ServedFromCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberStore()
	rels := newFakeRelationshipStore(members)
	cache := newFakeTreeCache()
	memberService := NewMemberService(members, cache, testLogger())
	treeService := NewTreeService(members, rels, cache, 0, testLogger())

	members.add("Ama", "Koum")

	graph, err := treeService.GetFamilyTree(ctx)
	require.NoError(t, err)
	require.Len(t, graph.Members, 1)
	_, cached, _ := cache.Get(ctx, familyTreeCacheKey)
	require.True(t, cached)

	// A direct store write without invalidation is not visible yet
	members.add("Bi", "Koum")
	graph, err = treeService.GetFamilyTree(ctx)
	require.NoError(t, err)
	assert.Len(t, graph.Members, 1)

	// A service-level mutation invalidates and the next read is fresh
	_, err = memberService.Create(ctx, &models.FamilyMember{FirstName: "Chantal", LastName: "Koum", Gender: "female", IsAlive: true})
	require.NoError(t, err)

	graph, err = treeService.GetFamilyTree(ctx)
	require.NoError(t, err)
	assert.Len(t, graph.Members, 3)
}
