package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/architdhariwal/sms-backend/internal/domain"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = time.Hour

var (
	// ErrMissingSecret is returned by NewTokenManager when no signing secret is set.
	ErrMissingSecret = errors.New("token signing secret is empty")
	// ErrTokenMissing means no credential was presented.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid covers bad signatures, unexpected algorithms and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the signature verified but the lifetime elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager handles issuing and validating JWT tokens.
// It is immutable after construction and safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) { tm.now = now }
}

// NewTokenManager builds a new manager. A non-positive ttl selects DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	AdmissionNumber string `json:"admissionNumber"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT bound to admissionNumber.
func (tm *TokenManager) Issue(admissionNumber string) (domain.AccessToken, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		AdmissionNumber: admissionNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admissionNumber,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.AccessToken{}, err
	}
	return domain.AccessToken{
		Token:           tokenString,
		AdmissionNumber: admissionNumber,
		IssuedAt:        issuedAt,
		ExpiresAt:       expiresAt,
	}, nil
}

// Verify validates tokenStr and returns the admission number it is bound to.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return "", ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", errors.Join(ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.AdmissionNumber == "" {
		return "", errors.Join(ErrTokenInvalid, errors.New("missing admissionNumber claim"))
	}
	return claims.AdmissionNumber, nil
}
