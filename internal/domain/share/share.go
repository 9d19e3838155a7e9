package share

import "time"

// Share grants one user access to one file. Permission is a free-form
// string ("read", "write"); at most one share exists per
// (file, shared-with user) pair.
type Share struct {
	ID           int64
	FileID       int64
	SharedWithID int64
	Permission   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateShareInput struct {
	FileID       int64
	SharedWithID int64
	Permission   string
}
