package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurpose scopes a token to one flow. Verification fails when the
// embedded purpose differs from the expected one, so a confirmation token
// can't be replayed as a password reset.
type TokenPurpose string

const (
	PurposeConfirm     TokenPurpose = "confirm"
	PurposeAuth        TokenPurpose = "auth"
	PurposeReset       TokenPurpose = "reset"
	PurposeEmailChange TokenPurpose = "email-change"
)

const (
	ConfirmTokenTTL     = time.Hour
	AuthTokenTTL        = time.Hour
	ResetTokenTTL       = 30 * time.Minute
	EmailChangeTokenTTL = time.Hour

	// MaxAuthTokenTTL caps client-requested auth token lifetimes.
	MaxAuthTokenTTL = 24 * time.Hour
)

// ErrTokenInvalid covers every verification failure: bad signature, expiry,
// wrong purpose, malformed input. Callers get no oracle about which.
var ErrTokenInvalid = errors.New("token invalid")

type tokenClaims struct {
	UserID  uint64 `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies time-limited, purpose-scoped tokens with a
// server-held secret. Tokens are stateless; validity is signature plus
// embedded expiry.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) Issue(purpose TokenPurpose, userID uint64, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:  userID,
		Purpose: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString(s.secret)
}

// Verify returns the subject id carried by the token, or ErrTokenInvalid.
func (s *TokenService) Verify(tokenStr string, purpose TokenPurpose) (uint64, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return 0, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(*tokenClaims)
	if !ok || claims.Purpose != string(purpose) || claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
