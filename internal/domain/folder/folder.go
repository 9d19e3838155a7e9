package folder

import "time"

// Folder is a hierarchical container. ParentID nil marks a root-level
// folder; containment forms a forest per owner.
type Folder struct {
	ID        int64
	Name      string
	OwnerID   int64
	ParentID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateFolderInput struct {
	Name     string
	OwnerID  int64
	ParentID *int64
}
