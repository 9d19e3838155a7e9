package service

import (
	"context"

	"cloudstore/internal/domain/file"
	"cloudstore/internal/domain/folder"
	"cloudstore/internal/domain/share"
	"cloudstore/internal/domain/user"
)

// Consumer-side repository interfaces. Each service declares only the
// persistence methods it actually uses; the postgres repositories
// satisfy them.

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type FolderRepository interface {
	Create(ctx context.Context, input folder.CreateFolderInput) (*folder.Folder, error)
	GetByID(ctx context.Context, id int64) (*folder.Folder, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*folder.Folder, error)
	ListChildren(ctx context.Context, parentID int64) ([]*folder.Folder, error)
	ListRoots(ctx context.Context, ownerID int64) ([]*folder.Folder, error)
	SearchByName(ctx context.Context, term string) ([]*folder.Folder, error)
	ExistsByNameAndOwner(ctx context.Context, name string, ownerID int64) (bool, error)
	CountChildren(ctx context.Context, parentID int64) (int, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdateParent(ctx context.Context, id int64, parentID *int64) error
	Delete(ctx context.Context, id int64) error
}

type FileRepository interface {
	Create(ctx context.Context, input file.CreateFileInput) (*file.File, error)
	GetByID(ctx context.Context, id int64) (*file.File, error)
	GetByBlobKey(ctx context.Context, blobKey string) (*file.File, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*file.File, error)
	ListByFolder(ctx context.Context, folderID int64) ([]*file.File, error)
	ListRoot(ctx context.Context, ownerID int64) ([]*file.File, error)
	ExistsByFilenameAndOwner(ctx context.Context, filename string, ownerID int64) (bool, error)
	UpdateFilename(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error
}

type ShareRepository interface {
	Create(ctx context.Context, input share.CreateShareInput) (*share.Share, error)
	GetByID(ctx context.Context, id int64) (*share.Share, error)
	GetByFileAndUser(ctx context.Context, fileID, sharedWithID int64) (*share.Share, error)
	ListByFile(ctx context.Context, fileID int64) ([]*share.Share, error)
	ListByUser(ctx context.Context, sharedWithID int64) ([]*share.Share, error)
	ListByPermission(ctx context.Context, permission string) ([]*share.Share, error)
	ExistsByFileAndUser(ctx context.Context, fileID, sharedWithID int64) (bool, error)
	UpdatePermission(ctx context.Context, id int64, permission string) error
	Delete(ctx context.Context, id int64) error
}
