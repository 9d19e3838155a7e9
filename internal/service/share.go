package service

import (
	"context"

	"cloudstore/internal/domain/share"
	"cloudstore/pkg/apperrors"
	"cloudstore/pkg/validator"
)

const msgAlreadyShared = "file is already shared with this user"

// ShareService owns per-file access grants. HasAccess reflects
// explicit grants only; a file's owner is not implicitly covered and
// must be checked separately by the caller.
type ShareService struct {
	shares ShareRepository
	files  FileRepository
	users  UserRepository
}

func NewShareService(shares ShareRepository, files FileRepository, users UserRepository) *ShareService {
	return &ShareService{
		shares: shares,
		files:  files,
		users:  users,
	}
}

func (s *ShareService) Share(ctx context.Context, fileID, targetUserID int64, permission string) (*share.Share, error) {
	if err := validator.Permission(permission); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.files.GetByID(ctx, fileID); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	exists, err := s.shares.ExistsByFileAndUser(ctx, fileID, targetUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(msgAlreadyShared)
	}

	return s.shares.Create(ctx, share.CreateShareInput{
		FileID:       fileID,
		SharedWithID: targetUserID,
		Permission:   permission,
	})
}

func (s *ShareService) Get(ctx context.Context, id int64) (*share.Share, error) {
	return s.shares.GetByID(ctx, id)
}

func (s *ShareService) GetForFileAndUser(ctx context.Context, fileID, targetUserID int64) (*share.Share, error) {
	return s.shares.GetByFileAndUser(ctx, fileID, targetUserID)
}

func (s *ShareService) ListByFile(ctx context.Context, fileID int64) ([]*share.Share, error) {
	return s.shares.ListByFile(ctx, fileID)
}

func (s *ShareService) ListByUser(ctx context.Context, targetUserID int64) ([]*share.Share, error) {
	return s.shares.ListByUser(ctx, targetUserID)
}

func (s *ShareService) ListByPermission(ctx context.Context, permission string) ([]*share.Share, error) {
	return s.shares.ListByPermission(ctx, permission)
}

// HasAccess reports whether an explicit grant exists for the pair.
func (s *ShareService) HasAccess(ctx context.Context, fileID, userID int64) (bool, error) {
	return s.shares.ExistsByFileAndUser(ctx, fileID, userID)
}

// UpdatePermission replaces the grant's permission string. The value
// is free-form beyond being non-blank.
func (s *ShareService) UpdatePermission(ctx context.Context, id int64, newPermission string) (*share.Share, error) {
	if err := validator.Permission(newPermission); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := s.shares.UpdatePermission(ctx, id, newPermission); err != nil {
		return nil, err
	}

	return s.shares.GetByID(ctx, id)
}

func (s *ShareService) Revoke(ctx context.Context, id int64) error {
	return s.shares.Delete(ctx, id)
}
