package auth

import "time"

// Role is the coarse-grained permission tier attached to a user.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleContributor Role = "CONTRIBUTOR"
	RoleGuest       Role = "GUEST"
)

const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

const (
	SessionStatusActive    = "ACTIVE"
	SessionStatusLoggedOff = "LOGGED_OFF"
)

// User is an identity record. Password digests are stored, never plaintext.
// Users are created out of band (seed tooling) and are read-only here.
type User struct {
	ID             string
	Username       string
	PasswordDigest string
	Role           Role
	Status         string
}

// Session is the server-side proof of a successful login. Sessions are never
// physically deleted; logout transitions them to LOGGED_OFF.
type Session struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Identity is the request-scoped result of authenticating a bearer token.
type Identity struct {
	SessionID string
	UserID    string
	Username  string
	Role      Role
}

// TokenDetails is what a successful login hands back to the client.
type TokenDetails struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiration"`
}
