package auth

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
)

// PendingUser carries the proposed registration fields inside the activation
// token. The user record is only created once the activation code is
// confirmed.
type PendingUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type activationClaims struct {
	User           PendingUser `json:"user"`
	ActivationCode string      `json:"activationCode"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// Config holds the secrets and lifetimes for all token kinds.
type Config struct {
	AccessSecret     string
	RefreshSecret    string
	ActivationSecret string

	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ActivationTTL time.Duration
}

// TokenManager issues and verifies the platform's signed tokens. The clock
// is injected so expiry behavior is deterministic in tests.
type TokenManager struct {
	config Config
	now    func() time.Time
}

func NewTokenManager(config Config) *TokenManager {
	return NewTokenManagerWithClock(config, time.Now)
}

func NewTokenManagerWithClock(config Config, now func() time.Time) *TokenManager {
	return &TokenManager{config: config, now: now}
}

// NewActivationToken signs a short-lived token embedding the pending user
// and a random 4-digit activation code. Returns the token and the code.
func (tm *TokenManager) NewActivationToken(user PendingUser) (string, string, error) {
	code := fmt.Sprintf("%04d", 1000+rand.Intn(9000))

	claims := activationClaims{
		User:           user,
		ActivationCode: code,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(tm.now()),
			ExpiresAt: jwt.NewNumericDate(tm.now().Add(tm.config.ActivationTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tm.config.ActivationSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign activation token: %w", err)
	}

	return token, code, nil
}

// VerifyActivationToken validates signature and expiry and returns the
// embedded pending user and activation code.
func (tm *TokenManager) VerifyActivationToken(token string) (*PendingUser, string, error) {
	claims := &activationClaims{}
	if err := tm.parse(token, tm.config.ActivationSecret, claims); err != nil {
		return nil, "", err
	}
	return &claims.User, claims.ActivationCode, nil
}

// SignAccessToken issues the short-lived access token for the user.
func (tm *TokenManager) SignAccessToken(userID uint) (string, error) {
	return tm.signSession(userID, tm.config.AccessSecret, tm.config.AccessTTL)
}

// SignRefreshToken issues the longer-lived refresh token for the user.
func (tm *TokenManager) SignRefreshToken(userID uint) (string, error) {
	return tm.signSession(userID, tm.config.RefreshSecret, tm.config.RefreshTTL)
}

// VerifyAccessToken returns the user id embedded in a valid access token.
func (tm *TokenManager) VerifyAccessToken(token string) (uint, error) {
	return tm.verifySession(token, tm.config.AccessSecret)
}

// VerifyRefreshToken returns the user id embedded in a valid refresh token.
func (tm *TokenManager) VerifyRefreshToken(token string) (uint, error) {
	return tm.verifySession(token, tm.config.RefreshSecret)
}

func (tm *TokenManager) signSession(userID uint, secret string, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(tm.now()),
			ExpiresAt: jwt.NewNumericDate(tm.now().Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (tm *TokenManager) verifySession(token, secret string) (uint, error) {
	claims := &sessionClaims{}
	if err := tm.parse(token, secret, claims); err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (tm *TokenManager) parse(token, secret string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
