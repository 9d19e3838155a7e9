package postgres

import (
	"context"

	"cloudstore/internal/domain/share"
	"cloudstore/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type ShareRepository struct {
	db *DB
}

func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, input share.CreateShareInput) (*share.Share, error) {
	query := `
		INSERT INTO shares (file_id, shared_with_id, permission)
		VALUES ($1, $2, $3)
		RETURNING id, file_id, shared_with_id, permission, created_at, updated_at
	`

	s := &share.Share{}
	err := r.db.Pool.QueryRow(ctx, query, input.FileID, input.SharedWithID, input.Permission).Scan(
		&s.ID, &s.FileID, &s.SharedWithID, &s.Permission, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("file is already shared with this user")
		}
		return nil, errFailedCreateShare(err)
	}

	return s, nil
}

func (r *ShareRepository) GetByID(ctx context.Context, id int64) (*share.Share, error) {
	query := `
		SELECT id, file_id, shared_with_id, permission, created_at, updated_at
		FROM shares WHERE id = $1
	`

	s := &share.Share{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FileID, &s.SharedWithID, &s.Permission, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errShareNotFound)
		}
		return nil, errFailedGetShare(err)
	}

	return s, nil
}

func (r *ShareRepository) GetByFileAndUser(ctx context.Context, fileID, sharedWithID int64) (*share.Share, error) {
	query := `
		SELECT id, file_id, shared_with_id, permission, created_at, updated_at
		FROM shares WHERE file_id = $1 AND shared_with_id = $2
	`

	s := &share.Share{}
	err := r.db.Pool.QueryRow(ctx, query, fileID, sharedWithID).Scan(
		&s.ID, &s.FileID, &s.SharedWithID, &s.Permission, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errShareNotFound)
		}
		return nil, errFailedGetShare(err)
	}

	return s, nil
}

func (r *ShareRepository) ListByFile(ctx context.Context, fileID int64) ([]*share.Share, error) {
	query := `
		SELECT id, file_id, shared_with_id, permission, created_at, updated_at
		FROM shares WHERE file_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, fileID)
}

func (r *ShareRepository) ListByUser(ctx context.Context, sharedWithID int64) ([]*share.Share, error) {
	query := `
		SELECT id, file_id, shared_with_id, permission, created_at, updated_at
		FROM shares WHERE shared_with_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, sharedWithID)
}

func (r *ShareRepository) ListByPermission(ctx context.Context, permission string) ([]*share.Share, error) {
	query := `
		SELECT id, file_id, shared_with_id, permission, created_at, updated_at
		FROM shares WHERE permission = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, permission)
}

func (r *ShareRepository) ExistsByFileAndUser(ctx context.Context, fileID, sharedWithID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM shares WHERE file_id = $1 AND shared_with_id = $2)"

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, fileID, sharedWithID).Scan(&exists); err != nil {
		return false, errFailedCheckShare(err)
	}

	return exists, nil
}

func (r *ShareRepository) UpdatePermission(ctx context.Context, id int64, permission string) error {
	query := "UPDATE shares SET permission = $2, updated_at = NOW() WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id, permission)
	if err != nil {
		return errFailedUpdateShare(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errShareNotFound)
	}

	return nil
}

func (r *ShareRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM shares WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteShare(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errShareNotFound)
	}

	return nil
}

func (r *ShareRepository) list(ctx context.Context, query string, arg any) ([]*share.Share, error) {
	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, errFailedListShares(err)
	}
	defer rows.Close()

	shares := make([]*share.Share, 0)
	for rows.Next() {
		s := &share.Share{}
		if err := rows.Scan(&s.ID, &s.FileID, &s.SharedWithID, &s.Permission, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, errFailedScanShare(err)
		}
		shares = append(shares, s)
	}

	return shares, rows.Err()
}
