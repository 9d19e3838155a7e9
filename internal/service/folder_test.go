package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"
)

func newFolderService(t *testing.T) (*FolderService, *memFolderRepo, *user.User) {
	t.Helper()

	users := newMemUserRepo()
	owner, err := users.Create(context.Background(), user.CreateUserInput{
		Username:   "alice",
		Email:      "alice@example.com",
		ExternalID: "ext-alice",
	})
	require.NoError(t, err)

	folders := newMemFolderRepo()
	return NewFolderService(folders, users), folders, owner
}

func TestFolderService_CreateAndGet(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "docs", owner.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)

	child, err := svc.Create(ctx, "reports", owner.ID, &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	got, err := svc.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "reports", got.Name)
}

func TestFolderService_Create_NameUniquePerOwnerAcrossTree(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "docs", owner.ID, nil)
	require.NoError(t, err)

	other, err := svc.Create(ctx, "archive", owner.ID, nil)
	require.NoError(t, err)

	// Same name under a different parent still conflicts.
	_, err = svc.Create(ctx, "docs", owner.ID, &other.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_ = root
}

func TestFolderService_Create_MissingOwnerOrParent(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "docs", 9999, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	missingParent := int64(9999)
	_, err = svc.Create(ctx, "docs", owner.ID, &missingParent)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFolderService_Rename(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "docs", owner.ID, nil)
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, f.ID, "documents")
	require.NoError(t, err)
	assert.Equal(t, "documents", renamed.Name)

	// Renaming to the current name is a no-op, not a conflict.
	same, err := svc.Rename(ctx, f.ID, "documents")
	require.NoError(t, err)
	assert.Equal(t, "documents", same.Name)

	_, err = svc.Create(ctx, "archive", owner.ID, nil)
	require.NoError(t, err)

	_, err = svc.Rename(ctx, f.ID, "archive")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFolderService_Move(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "a", owner.ID, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "b", owner.ID, nil)
	require.NoError(t, err)

	moved, err := svc.Move(ctx, b.ID, &a.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, a.ID, *moved.ParentID)

	// Back to root.
	moved, err = svc.Move(ctx, b.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestFolderService_Move_RejectsCycles(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "a", owner.ID, nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "b", owner.ID, &a.ID)
	require.NoError(t, err)
	c, err := svc.Create(ctx, "c", owner.ID, &b.ID)
	require.NoError(t, err)

	// Into itself.
	_, err = svc.Move(ctx, a.ID, &a.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Under its own descendant.
	_, err = svc.Move(ctx, a.ID, &c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Sibling-ward moves still work.
	_, err = svc.Move(ctx, c.ID, &a.ID)
	require.NoError(t, err)
}

func TestFolderService_Delete(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, "parent", owner.ID, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "child-one", owner.ID, &parent.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "child-two", owner.ID, &parent.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, parent.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "contains 2 subfolders")

	children, err := svc.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	for _, child := range children {
		require.NoError(t, svc.Delete(ctx, child.ID))
	}

	require.NoError(t, svc.Delete(ctx, parent.ID))

	_, err = svc.Get(ctx, parent.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFolderService_ListingAndSearch(t *testing.T) {
	svc, _, owner := newFolderService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "Projects", owner.ID, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "project-alpha", owner.ID, &root.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "misc", owner.ID, nil)
	require.NoError(t, err)

	roots, err := svc.ListRoots(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	children, err := svc.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	assert.Len(t, children, 1)

	all, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Case-insensitive substring match.
	found, err := svc.Search(ctx, "PROJECT")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
