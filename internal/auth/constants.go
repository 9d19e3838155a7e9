package auth

const (
	ContextKeyUserID     = "user_id"
	ContextKeyExternalID = "external_id"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUnknownUser             = "no account for this token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgTokenMissingSubject     = "token has no subject claim"
	msgTokenMissingKeyID       = "token has no key id"
	msgUnknownKeyID            = "unknown signing key id: %s"
)
