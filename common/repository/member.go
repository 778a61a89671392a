package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tribu-app/tribu/common/db"
	"github.com/tribu-app/tribu/common/models"
)

const memberColumns = `id, profile_id, first_name, last_name, maiden_name, gender,
	birth_date, birth_place, death_date, death_place, bio, photo_url, is_alive,
	created_at, updated_at`

// MemberRepository handles database operations for family members
type MemberRepository struct {
	db *db.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *db.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// GetAll retrieves every member ordered by (last_name, first_name)
func (r *MemberRepository) GetAll(ctx context.Context) ([]*models.FamilyMember, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM family_member
		ORDER BY last_name ASC, first_name ASC
	`, memberColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// GetByID retrieves a member by id. Returns (nil, nil) when no row exists.
func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FamilyMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM family_member WHERE id = $1`, memberColumns)

	member, err := scanMember(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetByProfileID retrieves all members linked to an account profile
func (r *MemberRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.FamilyMember, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM family_member
		WHERE profile_id = $1
		ORDER BY last_name ASC, first_name ASC
	`, memberColumns)

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members by profile: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// Search performs a case-insensitive substring match over names, places and bio
func (r *MemberRepository) Search(ctx context.Context, term string) ([]*models.FamilyMember, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM family_member
		WHERE first_name ILIKE $1
		   OR last_name ILIKE $1
		   OR maiden_name ILIKE $1
		   OR birth_place ILIKE $1
		   OR death_place ILIKE $1
		   OR bio ILIKE $1
		ORDER BY last_name ASC, first_name ASC
	`, memberColumns)

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// Create inserts a new member row
func (r *MemberRepository) Create(ctx context.Context, m *models.FamilyMember) error {
	query := `
		INSERT INTO family_member (id, profile_id, first_name, last_name, maiden_name, gender,
			birth_date, birth_place, death_date, death_place, bio, photo_url, is_alive,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.ProfileID, m.FirstName, m.LastName, m.MaidenName, m.Gender,
		m.BirthDate, m.BirthPlace, m.DeathDate, m.DeathPlace, m.Bio, m.PhotoURL,
		m.IsAlive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// Update writes every mutable column of the member row, updated_at included.
// Returns false when the id does not exist.
func (r *MemberRepository) Update(ctx context.Context, m *models.FamilyMember) (bool, error) {
	query := `
		UPDATE family_member
		SET profile_id = $2, first_name = $3, last_name = $4, maiden_name = $5,
		    gender = $6, birth_date = $7, birth_place = $8, death_date = $9,
		    death_place = $10, bio = $11, photo_url = $12, is_alive = $13,
		    updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		m.ID, m.ProfileID, m.FirstName, m.LastName, m.MaidenName, m.Gender,
		m.BirthDate, m.BirthPlace, m.DeathDate, m.DeathPlace, m.Bio, m.PhotoURL,
		m.IsAlive, m.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update member: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes a member and every edge where the member is either endpoint,
// inside one transaction. Either everything is deleted or nothing is.
// Returns whether the member row existed.
func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM family_relationship WHERE from_member_id = $1 OR to_member_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete member edges: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM family_member WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit member delete: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanMember(row pgx.Row) (*models.FamilyMember, error) {
	m := &models.FamilyMember{}
	err := row.Scan(
		&m.ID, &m.ProfileID, &m.FirstName, &m.LastName, &m.MaidenName, &m.Gender,
		&m.BirthDate, &m.BirthPlace, &m.DeathDate, &m.DeathPlace, &m.Bio, &m.PhotoURL,
		&m.IsAlive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func collectMembers(rows pgx.Rows) ([]*models.FamilyMember, error) {
	var members []*models.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
