package models

// FamilyGraph is the wire shape for whole-tree and bounded-subtree queries:
// a set of members plus every edge whose both endpoints are in that set.
type FamilyGraph struct {
	Members       []*FamilyMember       `json:"members"`
	Relationships []*FamilyRelationship `json:"relationships"`
}

// RelatedMember pairs a member with the edge that links them to the queried
// member, used for the "others" bucket where the type alone says little.
type RelatedMember struct {
	Member  *FamilyMember    `json:"member"`
	Type    RelationshipType `json:"relationship_type"`
	Details *string          `json:"relationship_details,omitempty"`
}

// MemberWithRelations is a member's record plus their direct relatives,
// bucketed by relationship category.
type MemberWithRelations struct {
	FamilyMember
	Parents  []*FamilyMember  `json:"parents"`
	Children []*FamilyMember  `json:"children"`
	Spouses  []*FamilyMember  `json:"spouses"`
	Siblings []*FamilyMember  `json:"siblings"`
	Others   []*RelatedMember `json:"others"`
}
