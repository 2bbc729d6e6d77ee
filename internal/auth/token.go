package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification outcomes. Callers must be able to tell an expired token from
// a tampered one, even though both map to the same HTTP rejection.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies signed, time-limited session tokens.
// The signing secret is injected once at construction; the manager holds no
// other mutable state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager with the given secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// SessionClaims is the JWT payload for a staff session.
type SessionClaims struct {
	StaffID string `json:"staffId"`
	jwt.RegisteredClaims
}

// Issue signs a new session token for the staff member. The returned expiry
// is issuance time plus the configured TTL.
func (tm *TokenManager) Issue(staffID string) (string, time.Time, error) {
	now := tm.now()
	return tm.signed(staffID, now, now.Add(tm.ttl))
}

// Refresh signs a replacement token for the same subject. Its expiry is
// kept strictly later than the presented token's: exp serializes at
// one-second precision, so a refresh within the same second as issuance
// would otherwise carry an identical expiry.
func (tm *TokenManager) Refresh(staffID string, prevExpiry time.Time) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	if !expiresAt.After(prevExpiry) {
		expiresAt = prevExpiry.Add(time.Second)
	}
	return tm.signed(staffID, now, expiresAt)
}

func (tm *TokenManager) signed(staffID string, now, expiresAt time.Time) (string, time.Time, error) {
	claims := &SessionClaims{
		StaffID: staffID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   staffID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature first, then expiry, and returns the claims.
// Tampered tokens come back as ErrTokenInvalid without their claims being
// trusted; structurally valid but stale tokens come back as ErrTokenExpired.
func (tm *TokenManager) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.StaffID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TTL exposes the configured token lifetime, used to bound denylist entries.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
