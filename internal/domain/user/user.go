package user

import "time"

// User links an external identity-provider account to a local numeric
// identity. The external id is assigned by the provider at registration
// and never changes.
type User struct {
	ID         int64
	Username   string
	Email      string
	ExternalID string
	Phone      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateUserInput struct {
	Username   string
	Email      string
	ExternalID string
	Phone      *string
}
