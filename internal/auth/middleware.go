package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/architdhariwal/sms-backend/pkg/util"
)

const subjectKey = "auth_admission_number"

// AuthMiddleware validates bearer tokens before a request reaches a repository.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes. Missing, invalid and
// expired tokens all yield 401; the reason is only logged.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err == nil {
		var admissionNumber string
		admissionNumber, err = m.tokens.Verify(token)
		if err == nil {
			c.Locals(subjectKey, admissionNumber)
			return c.Next()
		}
	}

	reason := "invalid"
	switch {
	case errors.Is(err, ErrTokenMissing):
		reason = "missing"
	case errors.Is(err, ErrTokenExpired):
		reason = "expired"
	}
	m.logger.Debug("rejected token",
		zap.String("reason", reason),
		zap.String("path", c.Path()),
		zap.Error(err))

	if reason == "missing" {
		return apperrors.NewUnauthorized("No token, authorization denied")
	}
	return apperrors.NewUnauthorized("Token is not valid")
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrTokenInvalid
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

// SubjectFromContext returns the admission number of the authenticated caller.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	val, ok := c.Locals(subjectKey).(string)
	return val, ok && val != ""
}
