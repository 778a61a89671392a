package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tribu-app/tribu/common/db"
	"github.com/tribu-app/tribu/common/models"
)

// ErrUnknownMember marks edge writes whose endpoints violate the foreign key
// to family_member. Callers map it to a client error.
var ErrUnknownMember = errors.New("relationship references unknown member")

const relationshipColumns = `id, from_member_id, to_member_id, relationship_type,
	relationship_details, start_date, end_date, created_at, updated_at`

const insertRelationship = `
	INSERT INTO family_relationship (id, from_member_id, to_member_id, relationship_type,
		relationship_details, start_date, end_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// RelationshipRepository handles database operations for relationship edges
type RelationshipRepository struct {
	db *db.DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *db.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// GetAll retrieves every edge
func (r *RelationshipRepository) GetAll(ctx context.Context) ([]*models.FamilyRelationship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM family_relationship
		ORDER BY created_at ASC
	`, relationshipColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	return collectRelationships(rows)
}

// GetByID retrieves an edge by id. Returns (nil, nil) when no row exists.
func (r *RelationshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyRelationship, error) {
	query := fmt.Sprintf(`SELECT %s FROM family_relationship WHERE id = $1`, relationshipColumns)

	rel, err := scanRelationship(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}

	return rel, nil
}

// GetByMemberID retrieves every edge where the member is either endpoint
func (r *RelationshipRepository) GetByMemberID(ctx context.Context, memberID uuid.UUID) ([]*models.FamilyRelationship, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM family_relationship
		WHERE from_member_id = $1 OR to_member_id = $1
		ORDER BY created_at ASC
	`, relationshipColumns)

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships by member: %w", err)
	}
	defer rows.Close()

	return collectRelationships(rows)
}

// ListWithin retrieves every edge whose both endpoints are in the given id set
func (r *RelationshipRepository) ListWithin(ctx context.Context, memberIDs []uuid.UUID) ([]*models.FamilyRelationship, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM family_relationship
		WHERE from_member_id = ANY($1) AND to_member_id = ANY($1)
		ORDER BY created_at ASC
	`, relationshipColumns)

	rows, err := r.db.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships within set: %w", err)
	}
	defer rows.Close()

	return collectRelationships(rows)
}

// Create inserts one directed edge
func (r *RelationshipRepository) Create(ctx context.Context, rel *models.FamilyRelationship) error {
	_, err := r.db.Exec(ctx, insertRelationship,
		rel.ID, rel.FromMemberID, rel.ToMemberID, rel.Type,
		rel.Details, rel.StartDate, rel.EndDate, rel.CreatedAt, rel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create relationship: %w", wrapEndpointError(err))
	}

	return nil
}

// CreatePair inserts a mirrored edge pair inside one transaction. If either
// insert fails, neither edge is persisted.
func (r *RelationshipRepository) CreatePair(ctx context.Context, forward, backward *models.FamilyRelationship) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin pair transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rel := range []*models.FamilyRelationship{forward, backward} {
		_, err := tx.Exec(ctx, insertRelationship,
			rel.ID, rel.FromMemberID, rel.ToMemberID, rel.Type,
			rel.Details, rel.StartDate, rel.EndDate, rel.CreatedAt, rel.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create relationship pair: %w", wrapEndpointError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit relationship pair: %w", err)
	}

	return nil
}

// Update writes every mutable column of the edge row, updated_at included.
// Returns false when the id does not exist.
func (r *RelationshipRepository) Update(ctx context.Context, rel *models.FamilyRelationship) (bool, error) {
	query := `
		UPDATE family_relationship
		SET from_member_id = $2, to_member_id = $3, relationship_type = $4,
		    relationship_details = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		rel.ID, rel.FromMemberID, rel.ToMemberID, rel.Type,
		rel.Details, rel.StartDate, rel.EndDate, rel.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update relationship: %w", wrapEndpointError(err))
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes one edge by id. Returns whether a row was removed.
func (r *RelationshipRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM family_relationship WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete relationship: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// wrapEndpointError translates foreign-key violations into ErrUnknownMember
func wrapEndpointError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return fmt.Errorf("%w: %s", ErrUnknownMember, pgErr.Detail)
	}
	return err
}

func scanRelationship(row pgx.Row) (*models.FamilyRelationship, error) {
	rel := &models.FamilyRelationship{}
	err := row.Scan(
		&rel.ID, &rel.FromMemberID, &rel.ToMemberID, &rel.Type,
		&rel.Details, &rel.StartDate, &rel.EndDate, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func collectRelationships(rows pgx.Rows) ([]*models.FamilyRelationship, error) {
	var rels []*models.FamilyRelationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationships: %w", err)
	}

	return rels, nil
}
