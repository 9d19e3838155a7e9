package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/domain/user"
	"cloudstore/pkg/apperrors"
)

type fakeUserService struct {
	byEmail map[string]*user.User
}

func (s *fakeUserService) Register(_ context.Context, email, username, _ string, phone *string) (*user.User, error) {
	u := &user.User{ID: int64(len(s.byEmail) + 1), Email: email, Username: username, Phone: phone, CreatedAt: time.Now()}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserService) Authenticate(_ context.Context, email, _ string) (string, error) {
	if _, ok := s.byEmail[email]; !ok {
		return "", apperrors.InvalidCredentials()
	}
	return "token-" + email, nil
}

func (s *fakeUserService) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (s *fakeUserService) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

func newUserHandlerFixture() (*UserHandler, *fakeUserService) {
	users := &fakeUserService{byEmail: make(map[string]*user.User)}
	return NewUserHandler(users, nopAudit{}), users
}

func TestUserHandler_Lookup(t *testing.T) {
	h, users := newUserHandlerFixture()
	users.byEmail["bob@example.com"] = &user.User{ID: 9, Username: "bob", Email: "bob@example.com", CreatedAt: time.Now()}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/lookup?email=bob%40example.com", nil)
	rec := httptest.NewRecorder()
	c := newAuthedContext(e, req, rec, 7)

	require.NoError(t, h.Lookup(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "bob", resp.Username)
}

func TestUserHandler_Lookup_MissingEmail(t *testing.T) {
	h, _ := newUserHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/lookup", nil)
	rec := httptest.NewRecorder()
	c := newAuthedContext(e, req, rec, 7)

	require.NoError(t, h.Lookup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Lookup_UnknownEmail(t *testing.T) {
	h, _ := newUserHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/lookup?email=nobody%40example.com", nil)
	rec := httptest.NewRecorder()
	c := newAuthedContext(e, req, rec, 7)

	err := h.Lookup(c)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
