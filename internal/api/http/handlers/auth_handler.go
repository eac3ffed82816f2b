package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/architdhariwal/sms-backend/internal/api/dto"
	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/service"
	apperrors "github.com/architdhariwal/sms-backend/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tok, err := h.auth.Login(c.UserContext(), req.AdmissionNumber, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return apperrors.NewInvalidCredentials()
		}
		return err
	}
	return c.JSON(dto.AuthResponse{Token: tok.Token, ExpiresAt: tok.ExpiresAt})
}
