package postgres

import (
	"context"

	"cloudstore/internal/domain/folder"
	"cloudstore/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type FolderRepository struct {
	db *DB
}

func NewFolderRepository(db *DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, input folder.CreateFolderInput) (*folder.Folder, error) {
	query := `
		INSERT INTO folders (name, owner_id, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, parent_id, created_at, updated_at
	`

	f := &folder.Folder{}
	err := r.db.Pool.QueryRow(ctx, query, input.Name, input.OwnerID, input.ParentID).Scan(
		&f.ID, &f.Name, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("folder with this name already exists for this owner")
		}
		return nil, errFailedCreateFolder(err)
	}

	return f, nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*folder.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at, updated_at
		FROM folders WHERE id = $1
	`

	f := &folder.Folder{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFolderNotFound)
		}
		return nil, errFailedGetFolder(err)
	}

	return f, nil
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*folder.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at, updated_at
		FROM folders WHERE owner_id = $1
		ORDER BY name ASC
	`

	return r.list(ctx, query, ownerID)
}

func (r *FolderRepository) ListChildren(ctx context.Context, parentID int64) ([]*folder.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at, updated_at
		FROM folders WHERE parent_id = $1
		ORDER BY name ASC
	`

	return r.list(ctx, query, parentID)
}

func (r *FolderRepository) ListRoots(ctx context.Context, ownerID int64) ([]*folder.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at, updated_at
		FROM folders WHERE owner_id = $1 AND parent_id IS NULL
		ORDER BY name ASC
	`

	return r.list(ctx, query, ownerID)
}

// SearchByName matches folder names case-insensitively by substring,
// across all owners.
func (r *FolderRepository) SearchByName(ctx context.Context, term string) ([]*folder.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at, updated_at
		FROM folders WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`

	return r.list(ctx, query, term)
}

func (r *FolderRepository) ExistsByNameAndOwner(ctx context.Context, name string, ownerID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM folders WHERE name = $1 AND owner_id = $2)"

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, name, ownerID).Scan(&exists); err != nil {
		return false, errFailedCheckFolderName(err)
	}

	return exists, nil
}

func (r *FolderRepository) CountChildren(ctx context.Context, parentID int64) (int, error) {
	query := "SELECT COUNT(*) FROM folders WHERE parent_id = $1"

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, parentID).Scan(&count); err != nil {
		return 0, errFailedCountChildren(err)
	}

	return count, nil
}

func (r *FolderRepository) UpdateName(ctx context.Context, id int64, name string) error {
	query := "UPDATE folders SET name = $2, updated_at = NOW() WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("folder with this name already exists for this owner")
		}
		return errFailedRenameFolder(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFolderNotFound)
	}

	return nil
}

func (r *FolderRepository) UpdateParent(ctx context.Context, id int64, parentID *int64) error {
	query := "UPDATE folders SET parent_id = $2, updated_at = NOW() WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id, parentID)
	if err != nil {
		return errFailedMoveFolder(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFolderNotFound)
	}

	return nil
}

func (r *FolderRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM folders WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteFolder(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errFolderNotFound)
	}

	return nil
}

func (r *FolderRepository) list(ctx context.Context, query string, arg any) ([]*folder.Folder, error) {
	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, errFailedListFolders(err)
	}
	defer rows.Close()

	folders := make([]*folder.Folder, 0)
	for rows.Next() {
		f := &folder.Folder{}
		if err := rows.Scan(&f.ID, &f.Name, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, errFailedScanFolder(err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}
