package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storegate/internal/identity"
	"storegate/pkg/domain"
)

// PostgresStore persists user credentials in PostgreSQL. This store is pure
// I/O; hashing and role validation happen in the service layer.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByIdentifier(ctx context.Context, id domain.Identifier) (identity.UserCredential, error) {
	query := `
		SELECT identifier, email, password_hash, role, secondary_id
		FROM user_credentials
		WHERE identifier = $1
	`
	var (
		user        identity.UserCredential
		identifier  string
		role        string
		secondaryID sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(
		&identifier, &user.Email, &user.PasswordHash, &role, &secondaryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return identity.UserCredential{}, ErrNotFound
		}
		return identity.UserCredential{}, fmt.Errorf("get user credential: %w", err)
	}

	user.Identifier = domain.Identifier(identifier)
	user.Role = domain.Role(role)
	if secondaryID.Valid {
		user.SecondaryID = secondaryID.String
	}
	return user, nil
}

func (s *PostgresStore) UpdatePasswordHash(ctx context.Context, id domain.Identifier, hash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_credentials SET password_hash = $2, updated_at = now() WHERE identifier = $1`,
		id.String(), hash,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) UpdateRole(ctx context.Context, id domain.Identifier, role domain.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_credentials SET role = $2, updated_at = now() WHERE identifier = $1`,
		id.String(), role.String(),
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Save(ctx context.Context, user identity.UserCredential) error {
	var secondaryID sql.NullString
	if user.SecondaryID != "" {
		secondaryID = sql.NullString{String: user.SecondaryID, Valid: true}
	}

	query := `
		INSERT INTO user_credentials (identifier, email, password_hash, role, secondary_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (identifier) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			secondary_id = EXCLUDED.secondary_id,
			updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query,
		user.Identifier.String(), user.Email, user.PasswordHash, user.Role.String(), secondaryID,
	)
	if err != nil {
		return fmt.Errorf("save user credential: %w", err)
	}
	return nil
}

func requireOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
