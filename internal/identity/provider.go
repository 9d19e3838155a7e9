package identity

import "context"

// Provider is the external identity bridge. Register returns the
// provider-assigned id for the new account; Authenticate exchanges
// credentials for an opaque bearer token.
type Provider interface {
	Register(ctx context.Context, email, password, username string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}
