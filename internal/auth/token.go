package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is the fixed service identifier embedded in every token.
	Issuer = "dps"

	// SessionDuration is the fixed lifetime of a session and its token.
	SessionDuration = 24 * time.Hour

	tokenScheme = "Bearer "
)

// signingMethod is pinned: verification never trusts the algorithm a token
// declares for itself.
var signingMethod = jwt.SigningMethodRS512

type sessionClaims struct {
	Ref string `json:"ref"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the bearer tokens issued on login. The signing
// key is process-wide, loaded once at startup, and immutable afterwards.
type Codec struct {
	key *rsa.PrivateKey
}

// NewCodec wraps the process signing key.
func NewCodec(key *rsa.PrivateKey) (*Codec, error) {
	if key == nil {
		return nil, errors.New("auth: signing key is required")
	}
	return &Codec{key: key}, nil
}

// Issue signs a token binding userID to sessionID, prefixed with the bearer
// scheme marker so clients can echo it back verbatim.
func (c *Codec) Issue(userID, sessionID string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		Ref: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenScheme + signed, nil
}

// Verify checks signature, algorithm, issuer, expiry, and not-before, and
// returns the subject and session reference claims. Any failure collapses
// into ErrInvalidToken; callers get no detail about which check rejected.
func (c *Codec) Verify(raw string) (userID, sessionID string, err error) {
	raw = StripScheme(raw)
	if raw == "" {
		return "", "", ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != signingMethod {
			return nil, ErrInvalidToken
		}
		return &c.key.PublicKey, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return "", "", ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Ref) == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Ref, nil
}

// StripScheme removes a leading bearer scheme marker if present.
func StripScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(tokenScheme) && strings.EqualFold(raw[:len(tokenScheme)], tokenScheme) {
		raw = raw[len(tokenScheme):]
	}
	return strings.TrimSpace(raw)
}

// ParseSigningKey parses an RSA private key from PEM, accepting both PKCS#1
// and PKCS#8 encodings.
func ParseSigningKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("auth: invalid PEM signing key")
	}
	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("auth: signing key is not RSA")
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("auth: unsupported key type %s", block.Type)
	}
}
