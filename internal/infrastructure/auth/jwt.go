package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cerberus-dev/cerberus/internal/shared/biztime"
)

const resetTokenPurpose = "password-reset"

// ResetClaims identify the account a password reset link was issued for.
// PasswordStamp ties the token to the current hash so it is single-use.
type ResetClaims struct {
	Purpose       string `json:"purpose"`
	PasswordStamp string `json:"pwd"`
	jwt.RegisteredClaims
}

// ResetTokenService signs and verifies password reset tokens.
type ResetTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewResetTokenService(secret string, ttlMinutes int) *ResetTokenService {
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &ResetTokenService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

func (s *ResetTokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID. passwordHash is the account's current hash.
func (s *ResetTokenService) Issue(userID uint, passwordHash string) (string, error) {
	now := biztime.NowUTC()
	claims := &ResetClaims{
		Purpose:       resetTokenPurpose,
		PasswordStamp: passwordStamp(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, nil
}

// Verify parses a reset token and returns the user id it was issued for.
func (s *ResetTokenService) Verify(tokenString string) (uint, *ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.Purpose != resetTokenPurpose {
		return 0, nil, fmt.Errorf("invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, nil, fmt.Errorf("invalid token subject")
	}
	return uint(id), claims, nil
}

// MatchesPassword reports whether the token was issued against passwordHash.
func (c *ResetClaims) MatchesPassword(passwordHash string) bool {
	return c.PasswordStamp == passwordStamp(passwordHash)
}

// passwordStamp uses the bcrypt salt so the token changes once the
// password does, without embedding the full hash.
func passwordStamp(hash string) string {
	if len(hash) < 29 {
		return hash
	}
	return hash[7:29]
}
