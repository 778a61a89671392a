package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tribu-app/tribu/common/models"
)

func newMemberFixture(t *testing.T) (*fakeMemberStore, *fakeRelationshipStore, *MemberService) {
	t.Helper()
	members := newFakeMemberStore()
	rels := newFakeRelationshipStore(members)
	return members, rels, NewMemberService(members, nil, testLogger())
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newMemberFixture(t)

	created, err := svc.Create(ctx, &models.FamilyMember{
		FirstName: "Jean",
		LastName:  "Koum",
		Gender:    "male",
		IsAlive:   true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestUpdate_OnlySuppliedFieldsChange(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")
	bio := "elder of the association"
	m.Bio = &bio

	updated, err := svc.Update(ctx, m.ID, []byte(`{"first_name":"Janvier"}`))
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Janvier", updated.FirstName)
	assert.Equal(t, "Koum", updated.LastName)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, m.ID, updated.ID)
}

func TestUpdate_NullClearsOptionalField(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Awa", "Koum")
	maiden := "Ngono"
	m.MaidenName = &maiden

	updated, err := svc.Update(ctx, m.ID, []byte(`{"maiden_name":null}`))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Nil(t, updated.MaidenName)
}

func TestUpdate_EmptyPatchStillBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")
	past := time.Now().UTC().Add(-time.Hour)
	m.UpdatedAt = past

	updated, err := svc.Update(ctx, m.ID, []byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, m.FirstName, updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(past))
}

func TestUpdate_IDAndCreatedAtImmutable(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")
	createdAt := m.CreatedAt

	updated, err := svc.Update(ctx, m.ID,
		[]byte(`{"id":"`+uuid.NewString()+`","created_at":"1999-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, m.ID, updated.ID)
	assert.Equal(t, createdAt, updated.CreatedAt)
}

func TestUpdate_UnknownMember(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newMemberFixture(t)

	updated, err := svc.Update(ctx, uuid.New(), []byte(`{"first_name":"X"}`))
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdate_MalformedPatch(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")

	_, err := svc.Update(ctx, m.ID, []byte(`{"first_name":`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestUpdate_PermitsDeceasedMarkedAlive(t *testing.T) {
	// is_alive and death_date are deliberately not cross-validated
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")

	updated, err := svc.Update(ctx, m.ID, []byte(`{"is_alive":true,"death_date":"2020-01-01"}`))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsAlive)
	require.NotNil(t, updated.DeathDate)
	assert.Equal(t, "2020-01-01", *updated.DeathDate)
}

func TestDelete_CascadesToEdges(t *testing.T) {
	ctx := context.Background()
	members, rels, svc := newMemberFixture(t)
	relService := NewRelationshipService(rels, nil, testLogger())

	a := members.add("Jean", "Koum")
	b := members.add("Awa", "Koum")
	_, err := relService.AddParentChild(ctx, a.ID, b.ID, nil)
	require.NoError(t, err)

	found, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, found)

	gone, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// No edge referencing the deleted member survives, seen from either side
	edgesA, err := rels.GetByMemberID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, edgesA)
	edgesB, err := rels.GetByMemberID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, edgesB)
}

func TestDelete_UnknownMember(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newMemberFixture(t)

	found, err := svc.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearch_MatchesAcrossFields(t *testing.T) {
	ctx := context.Background()
	members, _, svc := newMemberFixture(t)

	m := members.add("Jean", "Koum")
	place := "Bafoussam"
	m.BirthPlace = &place
	members.add("Awa", "Ngono")

	results, err := svc.Search(ctx, "bafou")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, m.ID, results[0].ID)
}
