package utils // package utils provides helper functions for token creation and verification

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/kalakriti/events-backend/internal/model"
)

// Verification failure modes.  ErrTokenExpired is reported when the token
// was once valid but its exp claim has passed; everything else (bad
// signature, malformed payload, wrong subject shape) is ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessToken represents a signed HS256 JWT along with its expiry.  Access
// tokens are short-lived, self-contained, and carried in the Authorization
// header; the server keeps no session state and offers no revocation.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims is what Verify hands back to callers: the authenticated user
// identifier and the role baked into the token at issue time.
type TokenClaims struct {
	UserID string
	Role   string
}

// NewAccessToken builds and signs an HS256 JWT for a user.  Claims are the
// standard set: subject (sub) carrying the USER-prefixed identifier, role,
// expiration (exp) and issued-at (iat).
func NewAccessToken(secret, userID, role string, ttlMin int) (AccessToken, error) {
	if !strings.HasPrefix(userID, model.UserIDPrefix) {
		return AccessToken{}, ErrTokenInvalid
	}
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a bearer token string.  Beyond the
// cryptographic check it enforces that the subject looks like one of our
// user identifiers: a token whose sub does not start with "USER" is
// rejected even when the signature is fine.
func VerifyAccessToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return TokenClaims{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if !strings.HasPrefix(sub, model.UserIDPrefix) {
		return TokenClaims{}, ErrTokenInvalid
	}
	role, _ := claims["role"].(string)
	return TokenClaims{UserID: sub, Role: role}, nil
}
