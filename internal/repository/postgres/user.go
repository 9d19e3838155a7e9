package postgres

import (
	"context"

	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (username, email, external_id, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, external_id, phone, created_at, updated_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Username, input.Email, input.ExternalID, input.Phone).Scan(
		&u.ID, &u.Username, &u.Email, &u.ExternalID, &u.Phone, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email or username already exists")
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, username, email, external_id, phone, created_at, updated_at
		FROM users WHERE id = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, username, email, external_id, phone, created_at, updated_at
		FROM users WHERE email = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	query := `
		SELECT id, username, email, external_id, phone, created_at, updated_at
		FROM users WHERE external_id = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, externalID))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)"

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, errFailedCheckUserEmail(err)
	}

	return exists, nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.ExternalID, &u.Phone, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}
