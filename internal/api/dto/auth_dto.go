package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	AdmissionNumber string `json:"admissionNumber" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}
