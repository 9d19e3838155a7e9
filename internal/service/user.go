package service

import (
	"context"

	"cloudstore/internal/domain/user"
	"cloudstore/internal/identity"
	"cloudstore/pkg/apperrors"
	"cloudstore/pkg/validator"
)

const msgEmailExists = "email already exists, choose another"

// UserService owns the local user directory. Registration is two-phase:
// the identity provider account is created first, and the local row is
// only persisted once the provider has assigned an external id. A
// provider failure aborts registration with no local row; there is no
// compensating delete if the local insert fails after the provider
// call succeeded.
type UserService struct {
	users    UserRepository
	provider identity.Provider
}

func NewUserService(users UserRepository, provider identity.Provider) *UserService {
	return &UserService{
		users:    users,
		provider: provider,
	}
}

func (s *UserService) Register(ctx context.Context, email, username, password string, phone *string) (*user.User, error) {
	if err := validator.Email(email); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := validator.Username(username); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := validator.Password(password); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if phone != nil {
		if err := validator.Phone(*phone); err != nil {
			return nil, apperrors.Validation(err.Error())
		}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict(msgEmailExists)
	}

	externalID, err := s.provider.Register(ctx, email, password, username)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, user.CreateUserInput{
		Username:   username,
		Email:      email,
		ExternalID: externalID,
		Phone:      phone,
	})
}

// Authenticate delegates entirely to the identity provider; local
// storage is not consulted.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	return s.provider.Authenticate(ctx, email, password)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// GetByExternalID resolves a verified token subject to the local record.
func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	return s.users.GetByExternalID(ctx, externalID)
}
