package auth

import "errors"

var (
	// ErrNotFound reports an absent entity or one outside its expected
	// lifecycle state (inactive user, logged-off session).
	ErrNotFound = errors.New("auth: not found")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken reports a signature, issuer, algorithm, or expiry
	// failure while verifying a bearer token.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrTokenNotProvided reports a request without a usable credential.
	ErrTokenNotProvided = errors.New("auth: token not provided")

	// ErrSessionInvalid reports a well-formed, correctly signed token whose
	// referenced session is absent, logged off, or owned by another user.
	ErrSessionInvalid = errors.New("auth: session invalid")

	// ErrForbidden reports a resolved identity lacking the required role.
	ErrForbidden = errors.New("auth: forbidden")

	// ErrStorage reports a backing-store failure. Always operational,
	// never an authentication outcome.
	ErrStorage = errors.New("auth: storage failure")
)
