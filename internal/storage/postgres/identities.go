package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/catalog-be/internal/models"
)

const identityColumns = `id, first_name, last_name, username, passport_series, passport_number, email, phone_number, password_hash, created_at`

// Save inserts a new identity row.
func (s *Store) Save(ctx context.Context, identity models.Identity) (models.Identity, error) {
	const query = `
		INSERT INTO identities (id, first_name, last_name, username, passport_series, passport_number, email, phone_number, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + identityColumns
	row := s.pool.QueryRow(ctx, query,
		identity.ID,
		identity.FirstName,
		identity.LastName,
		nullIfEmpty(identity.Username),
		identity.PassportSeries,
		identity.PassportNumber,
		identity.Email,
		identity.Phone,
		identity.PasswordHash,
	)
	created, err := scanIdentity(row)
	if err != nil {
		return models.Identity{}, translate(err)
	}
	return created, nil
}

// FindByEmail fetches an identity by email address, case-insensitively.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE LOWER(email) = LOWER($1)`
	identity, err := scanIdentity(s.pool.QueryRow(ctx, query, email))
	return identity, translate(err)
}

// FindByID fetches an identity by primary key.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (models.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	identity, err := scanIdentity(s.pool.QueryRow(ctx, query, id))
	return identity, translate(err)
}

func scanIdentity(row pgx.Row) (models.Identity, error) {
	var identity models.Identity
	var username *string
	err := row.Scan(
		&identity.ID,
		&identity.FirstName,
		&identity.LastName,
		&username,
		&identity.PassportSeries,
		&identity.PassportNumber,
		&identity.Email,
		&identity.Phone,
		&identity.PasswordHash,
		&identity.CreatedAt,
	)
	if err != nil {
		return models.Identity{}, err
	}
	if username != nil {
		identity.Username = *username
	}
	return identity, nil
}
