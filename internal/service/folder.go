package service

import (
	"context"
	"fmt"

	"cloudstore/internal/domain/folder"
	"cloudstore/pkg/apperrors"
	"cloudstore/pkg/validator"
)

const (
	msgFolderNameExistsFmt    = "folder with name %q already exists"
	msgFolderHasSubfoldersFmt = "cannot delete folder: contains %d subfolders"
	msgMoveIntoSelf           = "cannot move a folder into itself"
	msgMoveIntoDescendant     = "cannot move a folder into its own subtree"
	msgHierarchyTooDeep       = "folder hierarchy too deep"
	maxHierarchyDepth         = 256
)

// FolderService owns the folder hierarchy. Names are unique per owner
// across the whole tree, not per parent level.
type FolderService struct {
	folders FolderRepository
	users   UserRepository
}

func NewFolderService(folders FolderRepository, users UserRepository) *FolderService {
	return &FolderService{
		folders: folders,
		users:   users,
	}
}

func (s *FolderService) Create(ctx context.Context, name string, ownerID int64, parentID *int64) (*folder.Folder, error) {
	if err := validator.FolderName(name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if parentID != nil {
		if _, err := s.folders.GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	exists, err := s.folders.ExistsByNameAndOwner(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf(msgFolderNameExistsFmt, name))
	}

	return s.folders.Create(ctx, folder.CreateFolderInput{
		Name:     name,
		OwnerID:  ownerID,
		ParentID: parentID,
	})
}

func (s *FolderService) Get(ctx context.Context, id int64) (*folder.Folder, error) {
	return s.folders.GetByID(ctx, id)
}

func (s *FolderService) ListByOwner(ctx context.Context, ownerID int64) ([]*folder.Folder, error) {
	return s.folders.ListByOwner(ctx, ownerID)
}

func (s *FolderService) ListChildren(ctx context.Context, parentID int64) ([]*folder.Folder, error) {
	return s.folders.ListChildren(ctx, parentID)
}

func (s *FolderService) ListRoots(ctx context.Context, ownerID int64) ([]*folder.Folder, error) {
	return s.folders.ListRoots(ctx, ownerID)
}

// Search matches folder names case-insensitively by substring across
// all owners.
func (s *FolderService) Search(ctx context.Context, term string) ([]*folder.Folder, error) {
	return s.folders.SearchByName(ctx, term)
}

// Rename is idempotent: renaming a folder to its current name succeeds
// without a uniqueness check.
func (s *FolderService) Rename(ctx context.Context, id int64, newName string) (*folder.Folder, error) {
	if err := validator.FolderName(newName); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	f, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if f.Name == newName {
		return f, nil
	}

	exists, err := s.folders.ExistsByNameAndOwner(ctx, newName, f.OwnerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf(msgFolderNameExistsFmt, newName))
	}

	if err := s.folders.UpdateName(ctx, id, newName); err != nil {
		return nil, err
	}

	return s.folders.GetByID(ctx, id)
}

// Move re-parents a folder; a nil parent moves it to root level. Moves
// that would place a folder inside its own subtree are rejected to
// keep the hierarchy acyclic.
func (s *FolderService) Move(ctx context.Context, id int64, newParentID *int64) (*folder.Folder, error) {
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if newParentID != nil {
		if *newParentID == id {
			return nil, apperrors.Conflict(msgMoveIntoSelf)
		}

		parent, err := s.folders.GetByID(ctx, *newParentID)
		if err != nil {
			return nil, err
		}

		if err := s.ensureNotDescendant(ctx, id, parent); err != nil {
			return nil, err
		}
	}

	if err := s.folders.UpdateParent(ctx, id, newParentID); err != nil {
		return nil, err
	}

	return s.folders.GetByID(ctx, id)
}

func (s *FolderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.folders.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict(fmt.Sprintf(msgFolderHasSubfoldersFmt, count))
	}

	return s.folders.Delete(ctx, id)
}

// ensureNotDescendant walks the ancestor chain of the proposed parent
// and fails if the folder being moved appears in it. The depth bound
// guards against walking a hierarchy that is already corrupted.
func (s *FolderService) ensureNotDescendant(ctx context.Context, id int64, parent *folder.Folder) error {
	current := parent
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if current.ID == id {
			return apperrors.Conflict(msgMoveIntoDescendant)
		}

		if current.ParentID == nil {
			return nil
		}

		next, err := s.folders.GetByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}

	return apperrors.Conflict(msgHierarchyTooDeep)
}
