package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwksFetchTimeout = 10 * time.Second
	keyTypeRSA       = "RSA"
	headerKeyID      = "kid"

	errFailedFetchJWKSFmt  = "failed to fetch JWKS: %w"
	errUnexpectedStatusFmt = "unexpected JWKS response status: %d"
	errFailedDecodeJWKSFmt = "failed to decode JWKS: %w"
	errNoUsableKeys        = "JWKS contains no usable RSA keys"
	errBadModulusFmt       = "bad key modulus for kid %s: %w"
	errBadExponentFmt      = "bad key exponent for kid %s: %w"
)

// Verifier checks a bearer token and returns the subject identifier
// the identity provider assigned to the caller.
type Verifier interface {
	Subject(tokenString string) (string, error)
}

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	KeyType  string `json:"kty"`
	KeyID    string `json:"kid"`
	Modulus  string `json:"n"`
	Exponent string `json:"e"`
}

// JWKSVerifier validates RS256 tokens against the identity provider's
// published signing keys, fetched once at startup.
type JWKSVerifier struct {
	keys map[string]*rsa.PublicKey
}

func NewJWKSVerifier(ctx context.Context, jwksURL string) (*JWKSVerifier, error) {
	ctx, cancel := context.WithTimeout(ctx, jwksFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf(errFailedFetchJWKSFmt, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedFetchJWKSFmt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(errUnexpectedStatusFmt, resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf(errFailedDecodeJWKSFmt, err)
	}

	keys, err := parseKeys(doc)
	if err != nil {
		return nil, err
	}

	return &JWKSVerifier{keys: keys}, nil
}

// NewStaticVerifier builds a verifier from pre-loaded keys. Used by
// tests and deployments that pin the key set.
func NewStaticVerifier(keys map[string]*rsa.PublicKey) *JWKSVerifier {
	return &JWKSVerifier{keys: keys}
}

func (v *JWKSVerifier) Subject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}

		kid, ok := token.Header[headerKeyID].(string)
		if !ok {
			return nil, fmt.Errorf(msgTokenMissingKeyID)
		}

		key, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf(msgUnknownKeyID, kid)
		}

		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	if err != nil {
		return "", fmt.Errorf(msgTokenParseFailed, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf(msgTokenMissingSubject)
	}

	return subject, nil
}

func parseKeys(doc jwksDocument) (map[string]*rsa.PublicKey, error) {
	keys := make(map[string]*rsa.PublicKey)

	for _, k := range doc.Keys {
		if k.KeyType != keyTypeRSA || k.KeyID == "" {
			continue
		}

		nBytes, err := base64.RawURLEncoding.DecodeString(k.Modulus)
		if err != nil {
			return nil, fmt.Errorf(errBadModulusFmt, k.KeyID, err)
		}

		eBytes, err := base64.RawURLEncoding.DecodeString(k.Exponent)
		if err != nil {
			return nil, fmt.Errorf(errBadExponentFmt, k.KeyID, err)
		}

		keys[k.KeyID] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf(errNoUsableKeys)
	}

	return keys, nil
}
