package postgres

import (
	"context"

	"cloudstore/internal/domain/file"
	"cloudstore/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type FileRepository struct {
	db *DB
}

func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, input file.CreateFileInput) (*file.File, error) {
	query := `
		INSERT INTO files (filename, size_bytes, mime_type, blob_key, owner_id, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
	`

	f := &file.File{}
	err := r.db.Pool.QueryRow(ctx, query,
		input.Filename, input.SizeBytes, input.MimeType, input.BlobKey, input.OwnerID, input.FolderID,
	).Scan(
		&f.ID, &f.Filename, &f.SizeBytes, &f.MimeType, &f.BlobKey, &f.OwnerID, &f.FolderID, &f.CreatedAt, &f.UpdatedAt,
	)

	if err != nil {
		// Only a filename collision is retryable by the caller; a
		// duplicate blob key means the key was reused and is internal.
		if violatedConstraint(err) == constraintFilesOwnerFilename {
			return nil, apperrors.Conflict("file with this name already exists for this owner")
		}
		return nil, errFailedCreateFile(err)
	}

	return f, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id int64) (*file.File, error) {
	query := `
		SELECT id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
		FROM files WHERE id = $1
	`

	f := &file.File{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Filename, &f.SizeBytes, &f.MimeType, &f.BlobKey, &f.OwnerID, &f.FolderID, &f.CreatedAt, &f.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFileNotFound)
		}
		return nil, errFailedGetFile(err)
	}

	return f, nil
}

func (r *FileRepository) GetByBlobKey(ctx context.Context, blobKey string) (*file.File, error) {
	query := `
		SELECT id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
		FROM files WHERE blob_key = $1
	`

	f := &file.File{}
	err := r.db.Pool.QueryRow(ctx, query, blobKey).Scan(
		&f.ID, &f.Filename, &f.SizeBytes, &f.MimeType, &f.BlobKey, &f.OwnerID, &f.FolderID, &f.CreatedAt, &f.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFileNotFound)
		}
		return nil, errFailedGetFile(err)
	}

	return f, nil
}

func (r *FileRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*file.File, error) {
	query := `
		SELECT id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
		FROM files WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, ownerID)
}

func (r *FileRepository) ListByFolder(ctx context.Context, folderID int64) ([]*file.File, error) {
	query := `
		SELECT id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
		FROM files WHERE folder_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, folderID)
}

func (r *FileRepository) ListRoot(ctx context.Context, ownerID int64) ([]*file.File, error) {
	query := `
		SELECT id, filename, size_bytes, mime_type, blob_key, owner_id, folder_id, created_at, updated_at
		FROM files WHERE owner_id = $1 AND folder_id IS NULL
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, ownerID)
}

func (r *FileRepository) ExistsByFilenameAndOwner(ctx context.Context, filename string, ownerID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM files WHERE filename = $1 AND owner_id = $2)"

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, filename, ownerID).Scan(&exists); err != nil {
		return false, errFailedCheckFilename(err)
	}

	return exists, nil
}

func (r *FileRepository) UpdateFilename(ctx context.Context, id int64, filename string) error {
	query := "UPDATE files SET filename = $2, updated_at = NOW() WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id, filename)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("file with this name already exists for this owner")
		}
		return errFailedRenameFile(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFileNotFound)
	}

	return nil
}

func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM files WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteFile(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFileNotFound)
	}

	return nil
}

func (r *FileRepository) list(ctx context.Context, query string, arg any) ([]*file.File, error) {
	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, errFailedListFiles(err)
	}
	defer rows.Close()

	files := make([]*file.File, 0)
	for rows.Next() {
		f := &file.File{}
		if err := rows.Scan(
			&f.ID, &f.Filename, &f.SizeBytes, &f.MimeType, &f.BlobKey, &f.OwnerID, &f.FolderID, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, errFailedScanFile(err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}
