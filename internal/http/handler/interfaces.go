package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"cloudstore/internal/audit"
	"cloudstore/internal/domain/file"
	"cloudstore/internal/domain/folder"
	"cloudstore/internal/domain/share"
	"cloudstore/internal/domain/user"
	"cloudstore/internal/storage/s3"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// UserHandler interfaces
type UserService interface {
	Register(ctx context.Context, email, username, password string, phone *string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// FileHandler interfaces
type FileService interface {
	Create(ctx context.Context, filename string, sizeBytes int64, mimeType, blobKey string, ownerID int64, folderID *int64) (*file.File, error)
	Get(ctx context.Context, id int64) (*file.File, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*file.File, error)
	ListByFolder(ctx context.Context, folderID int64) ([]*file.File, error)
	ListRoot(ctx context.Context, ownerID int64) ([]*file.File, error)
	Rename(ctx context.Context, id int64, newFilename string) (*file.File, error)
	Delete(ctx context.Context, id int64) (*file.File, error)
}

type BlobStorage interface {
	Upload(ctx context.Context, src io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, blobKey string) error
	PresignGet(ctx context.Context, blobKey string, disposition s3.Disposition, filename string) (string, error)
}

// FolderHandler interfaces
type FolderService interface {
	Create(ctx context.Context, name string, ownerID int64, parentID *int64) (*folder.Folder, error)
	Get(ctx context.Context, id int64) (*folder.Folder, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*folder.Folder, error)
	ListChildren(ctx context.Context, parentID int64) ([]*folder.Folder, error)
	ListRoots(ctx context.Context, ownerID int64) ([]*folder.Folder, error)
	Search(ctx context.Context, term string) ([]*folder.Folder, error)
	Rename(ctx context.Context, id int64, newName string) (*folder.Folder, error)
	Move(ctx context.Context, id int64, newParentID *int64) (*folder.Folder, error)
	Delete(ctx context.Context, id int64) error
}

// ShareHandler interfaces
type ShareService interface {
	Share(ctx context.Context, fileID, targetUserID int64, permission string) (*share.Share, error)
	Get(ctx context.Context, id int64) (*share.Share, error)
	ListByFile(ctx context.Context, fileID int64) ([]*share.Share, error)
	ListByUser(ctx context.Context, targetUserID int64) ([]*share.Share, error)
	ListByPermission(ctx context.Context, permission string) ([]*share.Share, error)
	HasAccess(ctx context.Context, fileID, userID int64) (bool, error)
	UpdatePermission(ctx context.Context, id int64, newPermission string) (*share.Share, error)
	Revoke(ctx context.Context, id int64) error
}

// AccessChecker is the slice of the share service the file handler needs
// to authorize downloads of files the caller does not own.
type AccessChecker interface {
	HasAccess(ctx context.Context, fileID, userID int64) (bool, error)
}

type AuditRecorder interface {
	LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID *int64, action audit.Action, status audit.Status)
	LogError(c echo.Context, resourceType audit.ResourceType, resourceID *int64, action audit.Action, err error)
}
