package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloudstore/internal/domain/file"
	"cloudstore/internal/domain/folder"
	"cloudstore/internal/domain/share"
	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"
)

// In-memory repositories mirroring the postgres implementations,
// including their uniqueness constraints and sentinel error mapping.

type memUserRepo struct {
	nextID int64
	users  map[int64]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*user.User)}
}

func (r *memUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == input.Email || u.Username == input.Username || u.ExternalID == input.ExternalID {
			return nil, apperrors.Conflict("user already exists")
		}
	}
	r.nextID++
	u := &user.User{
		ID:         r.nextID,
		Username:   input.Username,
		Email:      input.Email,
		ExternalID: input.ExternalID,
		Phone:      input.Phone,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *memUserRepo) GetByExternalID(_ context.Context, externalID string) (*user.User, error) {
	for _, u := range r.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memFolderRepo struct {
	nextID  int64
	folders map[int64]*folder.Folder
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{folders: make(map[int64]*folder.Folder)}
}

func (r *memFolderRepo) Create(_ context.Context, input folder.CreateFolderInput) (*folder.Folder, error) {
	for _, f := range r.folders {
		if f.OwnerID == input.OwnerID && f.Name == input.Name {
			return nil, apperrors.Conflict("folder already exists")
		}
	}
	r.nextID++
	f := &folder.Folder{
		ID:        r.nextID,
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		ParentID:  input.ParentID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.folders[f.ID] = f
	return f, nil
}

func (r *memFolderRepo) GetByID(_ context.Context, id int64) (*folder.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, apperrors.NotFound("folder not found")
	}
	cp := *f
	return &cp, nil
}

func (r *memFolderRepo) ListByOwner(_ context.Context, ownerID int64) ([]*folder.Folder, error) {
	var out []*folder.Folder
	for _, f := range r.folders {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFolderRepo) ListChildren(_ context.Context, parentID int64) ([]*folder.Folder, error) {
	var out []*folder.Folder
	for _, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFolderRepo) ListRoots(_ context.Context, ownerID int64) ([]*folder.Folder, error) {
	var out []*folder.Folder
	for _, f := range r.folders {
		if f.OwnerID == ownerID && f.ParentID == nil {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFolderRepo) SearchByName(_ context.Context, term string) ([]*folder.Folder, error) {
	var out []*folder.Folder
	for _, f := range r.folders {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(term)) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFolderRepo) ExistsByNameAndOwner(_ context.Context, name string, ownerID int64) (bool, error) {
	for _, f := range r.folders {
		if f.OwnerID == ownerID && f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFolderRepo) CountChildren(_ context.Context, parentID int64) (int, error) {
	count := 0
	for _, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (r *memFolderRepo) UpdateName(_ context.Context, id int64, name string) error {
	f, ok := r.folders[id]
	if !ok {
		return apperrors.NotFound("folder not found")
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	return nil
}

func (r *memFolderRepo) UpdateParent(_ context.Context, id int64, parentID *int64) error {
	f, ok := r.folders[id]
	if !ok {
		return apperrors.NotFound("folder not found")
	}
	f.ParentID = parentID
	f.UpdatedAt = time.Now()
	return nil
}

func (r *memFolderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.folders[id]; !ok {
		return apperrors.NotFound("folder not found")
	}
	delete(r.folders, id)
	return nil
}

type memFileRepo struct {
	nextID int64
	files  map[int64]*file.File
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: make(map[int64]*file.File)}
}

func (r *memFileRepo) Create(_ context.Context, input file.CreateFileInput) (*file.File, error) {
	for _, f := range r.files {
		if f.OwnerID == input.OwnerID && f.Filename == input.Filename {
			return nil, apperrors.Conflict("file already exists")
		}
	}
	// A blob key collision is not a retryable conflict, matching the
	// postgres repository's constraint mapping.
	for _, f := range r.files {
		if f.BlobKey == input.BlobKey {
			return nil, fmt.Errorf("failed to create file: duplicate blob key %s", input.BlobKey)
		}
	}
	r.nextID++
	f := &file.File{
		ID:        r.nextID,
		Filename:  input.Filename,
		SizeBytes: input.SizeBytes,
		MimeType:  input.MimeType,
		BlobKey:   input.BlobKey,
		OwnerID:   input.OwnerID,
		FolderID:  input.FolderID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.files[f.ID] = f
	return f, nil
}

func (r *memFileRepo) GetByID(_ context.Context, id int64) (*file.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, apperrors.NotFound("file not found")
	}
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) GetByBlobKey(_ context.Context, blobKey string) (*file.File, error) {
	for _, f := range r.files {
		if f.BlobKey == blobKey {
			return f, nil
		}
	}
	return nil, apperrors.NotFound("file not found")
}

func (r *memFileRepo) ListByOwner(_ context.Context, ownerID int64) ([]*file.File, error) {
	var out []*file.File
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileRepo) ListByFolder(_ context.Context, folderID int64) ([]*file.File, error) {
	var out []*file.File
	for _, f := range r.files {
		if f.FolderID != nil && *f.FolderID == folderID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileRepo) ListRoot(_ context.Context, ownerID int64) ([]*file.File, error) {
	var out []*file.File
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.FolderID == nil {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFileRepo) ExistsByFilenameAndOwner(_ context.Context, filename string, ownerID int64) (bool, error) {
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.Filename == filename {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFileRepo) UpdateFilename(_ context.Context, id int64, filename string) error {
	target, ok := r.files[id]
	if !ok {
		return apperrors.NotFound("file not found")
	}
	for _, f := range r.files {
		if f.ID != id && f.OwnerID == target.OwnerID && f.Filename == filename {
			return apperrors.Conflict("file already exists")
		}
	}
	target.Filename = filename
	target.UpdatedAt = time.Now()
	return nil
}

func (r *memFileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.files[id]; !ok {
		return apperrors.NotFound("file not found")
	}
	delete(r.files, id)
	return nil
}

type memShareRepo struct {
	nextID int64
	shares map[int64]*share.Share
}

func newMemShareRepo() *memShareRepo {
	return &memShareRepo{shares: make(map[int64]*share.Share)}
}

func (r *memShareRepo) Create(_ context.Context, input share.CreateShareInput) (*share.Share, error) {
	for _, s := range r.shares {
		if s.FileID == input.FileID && s.SharedWithID == input.SharedWithID {
			return nil, apperrors.Conflict("share already exists")
		}
	}
	r.nextID++
	s := &share.Share{
		ID:           r.nextID,
		FileID:       input.FileID,
		SharedWithID: input.SharedWithID,
		Permission:   input.Permission,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.shares[s.ID] = s
	return s, nil
}

func (r *memShareRepo) GetByID(_ context.Context, id int64) (*share.Share, error) {
	s, ok := r.shares[id]
	if !ok {
		return nil, apperrors.NotFound("share not found")
	}
	cp := *s
	return &cp, nil
}

func (r *memShareRepo) GetByFileAndUser(_ context.Context, fileID, sharedWithID int64) (*share.Share, error) {
	for _, s := range r.shares {
		if s.FileID == fileID && s.SharedWithID == sharedWithID {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("share not found")
}

func (r *memShareRepo) ListByFile(_ context.Context, fileID int64) ([]*share.Share, error) {
	var out []*share.Share
	for _, s := range r.shares {
		if s.FileID == fileID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memShareRepo) ListByUser(_ context.Context, sharedWithID int64) ([]*share.Share, error) {
	var out []*share.Share
	for _, s := range r.shares {
		if s.SharedWithID == sharedWithID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memShareRepo) ListByPermission(_ context.Context, permission string) ([]*share.Share, error) {
	var out []*share.Share
	for _, s := range r.shares {
		if s.Permission == permission {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memShareRepo) ExistsByFileAndUser(_ context.Context, fileID, sharedWithID int64) (bool, error) {
	for _, s := range r.shares {
		if s.FileID == fileID && s.SharedWithID == sharedWithID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memShareRepo) UpdatePermission(_ context.Context, id int64, permission string) error {
	s, ok := r.shares[id]
	if !ok {
		return apperrors.NotFound("share not found")
	}
	s.Permission = permission
	s.UpdatedAt = time.Now()
	return nil
}

func (r *memShareRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.shares[id]; !ok {
		return apperrors.NotFound("share not found")
	}
	delete(r.shares, id)
	return nil
}

func folderInput(name string, ownerID int64, parentID *int64) folder.CreateFolderInput {
	return folder.CreateFolderInput{Name: name, OwnerID: ownerID, ParentID: parentID}
}

// fakeProvider is an in-memory identity provider.
type fakeProvider struct {
	registered  map[string]string // email -> password
	registerErr error
	authErr     error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{registered: make(map[string]string)}
}

func (p *fakeProvider) Register(_ context.Context, email, password, _ string) (string, error) {
	if p.registerErr != nil {
		return "", p.registerErr
	}
	p.registered[email] = password
	return "ext-" + email, nil
}

func (p *fakeProvider) Authenticate(_ context.Context, email, password string) (string, error) {
	if p.authErr != nil {
		return "", p.authErr
	}
	if stored, ok := p.registered[email]; !ok || stored != password {
		return "", apperrors.InvalidCredentials()
	}
	return fmt.Sprintf("token-%s", email), nil
}
