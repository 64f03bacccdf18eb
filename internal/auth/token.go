package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

// Claims are the JWT claims carried by an issued bearer token: enough
// identity and role information for the routing layer to authorize a
// request without a user lookup.
type Claims struct {
	UserID int64                  `json:"userId"`
	Name   string                 `json:"name"`
	Email  string                 `json:"email"`
	Roles  []model.RoleAssignment `json:"roles"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens. It is a pure codec:
// persistence of the revocation record lives in the repository layer.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec using the given HMAC secret and token
// lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Sign produces a signed bearer token for the user, with expiry.
func (c *TokenCodec) Sign(user model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse cryptographically verifies a token and returns its claims.
// A token that parses here may still be revoked; liveness is decided
// by the auth record, not by this codec.
func (c *TokenCodec) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.Auth("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, errs.Auth("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errs.Auth("invalid token")
	}
	return claims, nil
}

// User reconstructs the caller identity carried by the claims.
func (cl *Claims) User() model.User {
	return model.User{
		ID:    cl.UserID,
		Name:  cl.Name,
		Email: cl.Email,
		Roles: cl.Roles,
	}
}

// SignatureFragment derives the server-side lookup key for a token:
// the SHA-256 hex digest of the token's signature segment. Storing the
// fragment instead of the whole token keeps the auth table free of
// replayable credentials while still pinning the record to one exact
// token.
func SignatureFragment(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", errs.Auth("invalid token")
	}
	sum := sha256.Sum256([]byte(parts[2]))
	return hex.EncodeToString(sum[:]), nil
}
