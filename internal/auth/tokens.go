package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	bcryptCost      = 10
)

// Tokens issues and verifies the access/refresh token pair. Access and
// refresh tokens are signed with distinct secrets so one can never stand
// in for the other.
type Tokens struct {
	AccessSecret  string
	RefreshSecret string
}

type claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueAccessToken signs a short-lived access token for userID.
func (t *Tokens) IssueAccessToken(userID uuid.UUID) (string, error) {
	return t.sign(userID, t.AccessSecret, accessTokenTTL)
}

// IssueRefreshToken signs a long-lived refresh token for userID.
func (t *Tokens) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return t.sign(userID, t.RefreshSecret, refreshTokenTTL)
}

func (t *Tokens) sign(userID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// VerifyAccessToken returns the user id carried by a valid access token.
// Malformed, expired or mis-signed tokens return ok=false, never an error.
func (t *Tokens) VerifyAccessToken(token string) (uuid.UUID, bool) {
	return verify(token, t.AccessSecret)
}

// VerifyRefreshToken returns the user id carried by a valid refresh token.
func (t *Tokens) VerifyRefreshToken(token string) (uuid.UUID, bool) {
	return verify(token, t.RefreshSecret)
}

func verify(token, secret string) (uuid.UUID, bool) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
