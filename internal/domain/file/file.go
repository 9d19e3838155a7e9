package file

import "time"

// File is a metadata record; the bytes live in the blob store under
// BlobKey, which is unique and immutable once set.
type File struct {
	ID        int64
	Filename  string
	SizeBytes int64
	MimeType  string
	BlobKey   string
	OwnerID   int64
	FolderID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateFileInput struct {
	Filename  string
	SizeBytes int64
	MimeType  string
	BlobKey   string
	OwnerID   int64
	FolderID  *int64
}
