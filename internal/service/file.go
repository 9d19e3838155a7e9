package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloudstore/internal/domain/file"
	"cloudstore/pkg/apperrors"
	"cloudstore/pkg/validator"
)

const (
	// A concurrent create for the same owner and name can win the
	// unique index between our existence check and insert; each retry
	// recomputes the suffix from fresh state.
	maxCreateAttempts = 5

	msgFilenameEmpty          = "filename cannot be empty"
	msgCreateRetriesExhausted = "could not allocate a unique filename"

	dedupSuffixFmt = "%s (%d)%s"
)

// FileService owns file metadata. The blob itself is written to the
// object store before Create is called and removed (best-effort) after
// Delete returns; this service never touches bytes.
type FileService struct {
	files   FileRepository
	users   UserRepository
	folders FolderRepository
}

func NewFileService(files FileRepository, users UserRepository, folders FolderRepository) *FileService {
	return &FileService{
		files:   files,
		users:   users,
		folders: folders,
	}
}

// Create stores a metadata row for an already-uploaded blob. If the
// owner already has a file with this name the stored filename gets a
// " (n)" suffix before the extension, counting up from 1 until free.
func (s *FileService) Create(ctx context.Context, filename string, sizeBytes int64, mimeType, blobKey string, ownerID int64, folderID *int64) (*file.File, error) {
	if err := validator.FileName(filename); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := validator.FileSize(sizeBytes); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if folderID != nil {
		if _, err := s.folders.GetByID(ctx, *folderID); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		unique, err := s.uniqueFilename(ctx, filename, ownerID)
		if err != nil {
			return nil, err
		}

		f, err := s.files.Create(ctx, file.CreateFileInput{
			Filename:  unique,
			SizeBytes: sizeBytes,
			MimeType:  mimeType,
			BlobKey:   blobKey,
			OwnerID:   ownerID,
			FolderID:  folderID,
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return nil, err
		}

		return f, nil
	}

	return nil, apperrors.Conflict(msgCreateRetriesExhausted)
}

func (s *FileService) Get(ctx context.Context, id int64) (*file.File, error) {
	return s.files.GetByID(ctx, id)
}

func (s *FileService) GetByBlobKey(ctx context.Context, blobKey string) (*file.File, error) {
	return s.files.GetByBlobKey(ctx, blobKey)
}

func (s *FileService) ListByOwner(ctx context.Context, ownerID int64) ([]*file.File, error) {
	return s.files.ListByOwner(ctx, ownerID)
}

func (s *FileService) ListByFolder(ctx context.Context, folderID int64) ([]*file.File, error) {
	return s.files.ListByFolder(ctx, folderID)
}

func (s *FileService) ListRoot(ctx context.Context, ownerID int64) ([]*file.File, error) {
	return s.files.ListRoot(ctx, ownerID)
}

// Rename updates the stored filename. Unlike Create it does not apply
// the de-duplication suffix; the storage-level uniqueness constraint
// rejects a rename onto a name the owner already uses.
func (s *FileService) Rename(ctx context.Context, id int64, newFilename string) (*file.File, error) {
	if strings.TrimSpace(newFilename) == "" {
		return nil, apperrors.Validation(msgFilenameEmpty)
	}

	if _, err := s.files.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.files.UpdateFilename(ctx, id, newFilename); err != nil {
		return nil, err
	}

	return s.files.GetByID(ctx, id)
}

// Delete removes the metadata row and returns the removed record so
// the caller can attempt blob cleanup with its key. Blob deletion is
// deliberately not part of this operation.
func (s *FileService) Delete(ctx context.Context, id int64) (*file.File, error) {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.files.Delete(ctx, id); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *FileService) uniqueFilename(ctx context.Context, original string, ownerID int64) (string, error) {
	exists, err := s.files.ExistsByFilenameAndOwner(ctx, original, ownerID)
	if err != nil {
		return "", err
	}
	if !exists {
		return original, nil
	}

	base, ext := splitExtension(original)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf(dedupSuffixFmt, base, counter, ext)

		exists, err := s.files.ExistsByFilenameAndOwner(ctx, candidate, ownerID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

// splitExtension splits at the last dot. A leading dot is not an
// extension marker, so ".profile" keeps its name intact.
func splitExtension(filename string) (base, ext string) {
	lastDot := strings.LastIndex(filename, ".")
	if lastDot > 0 {
		return filename[:lastDot], filename[lastDot:]
	}
	return filename, ""
}
