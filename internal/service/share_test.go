package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/domain/file"
	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"
)

type shareFixture struct {
	svc      *ShareService
	owner    *user.User
	grantee  *user.User
	document *file.File
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()
	ctx := context.Background()

	users := newMemUserRepo()
	owner, err := users.Create(ctx, user.CreateUserInput{
		Username: "alice", Email: "alice@example.com", ExternalID: "ext-alice",
	})
	require.NoError(t, err)
	grantee, err := users.Create(ctx, user.CreateUserInput{
		Username: "bob", Email: "bob@example.com", ExternalID: "ext-bob",
	})
	require.NoError(t, err)

	files := newMemFileRepo()
	doc, err := files.Create(ctx, file.CreateFileInput{
		Filename: "report.pdf", SizeBytes: 10, MimeType: "application/pdf",
		BlobKey: "files/k1", OwnerID: owner.ID,
	})
	require.NoError(t, err)

	return &shareFixture{
		svc:      NewShareService(newMemShareRepo(), files, users),
		owner:    owner,
		grantee:  grantee,
		document: doc,
	}
}

func TestShareService_Share(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	s, err := fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "read")
	require.NoError(t, err)
	assert.Equal(t, fx.document.ID, s.FileID)
	assert.Equal(t, fx.grantee.ID, s.SharedWithID)
	assert.Equal(t, "read", s.Permission)
}

func TestShareService_Share_Duplicate(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "read")
	require.NoError(t, err)

	// A second grant for the same pair conflicts even with a different
	// permission.
	_, err = fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "write")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestShareService_Share_MissingFileOrUser(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Share(ctx, 9999, fx.grantee.ID, "read")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = fx.svc.Share(ctx, fx.document.ID, 9999, "read")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestShareService_HasAccessLifecycle(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	ok, err := fx.svc.HasAccess(ctx, fx.document.ID, fx.grantee.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	s, err := fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "read")
	require.NoError(t, err)

	ok, err = fx.svc.HasAccess(ctx, fx.document.ID, fx.grantee.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Grants do not extend to the owner or other users.
	ok, err = fx.svc.HasAccess(ctx, fx.document.ID, fx.owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fx.svc.Revoke(ctx, s.ID))

	ok, err = fx.svc.HasAccess(ctx, fx.document.ID, fx.grantee.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShareService_UpdatePermission(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	s, err := fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "read")
	require.NoError(t, err)

	updated, err := fx.svc.UpdatePermission(ctx, s.ID, "write")
	require.NoError(t, err)
	assert.Equal(t, "write", updated.Permission)

	_, err = fx.svc.UpdatePermission(ctx, s.ID, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = fx.svc.UpdatePermission(ctx, 9999, "read")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestShareService_Listing(t *testing.T) {
	fx := newShareFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Share(ctx, fx.document.ID, fx.grantee.ID, "read")
	require.NoError(t, err)

	byFile, err := fx.svc.ListByFile(ctx, fx.document.ID)
	require.NoError(t, err)
	assert.Len(t, byFile, 1)

	byUser, err := fx.svc.ListByUser(ctx, fx.grantee.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	byPerm, err := fx.svc.ListByPermission(ctx, "read")
	require.NoError(t, err)
	assert.Len(t, byPerm, 1)

	byPerm, err = fx.svc.ListByPermission(ctx, "write")
	require.NoError(t, err)
	assert.Empty(t, byPerm)
}

func TestShareService_Revoke_NotFound(t *testing.T) {
	fx := newShareFixture(t)

	err := fx.svc.Revoke(context.Background(), 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
