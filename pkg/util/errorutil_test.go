package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/persistence"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error", NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"fiber error", fiber.NewError(http.StatusNotFound, "Cannot GET /x"), "NOT_FOUND", http.StatusNotFound},
		{"not found", fmt.Errorf("%w: isbn %q", domain.ErrNotFound, "1"), "NOT_FOUND", http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: isbn", domain.ErrDuplicateKey), "DUPLICATE_KEY", http.StatusBadRequest},
		{"immutable", fmt.Errorf("%w: id", domain.ErrImmutableField), "VALIDATION_FAILED", http.StatusBadRequest},
		{"invalid record", domain.ErrInvalidRecord, "VALIDATION_FAILED", http.StatusBadRequest},
		{"credentials", domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusBadRequest},
		{"busy", fmt.Errorf("%w: books", persistence.ErrStoreBusy), "STORE_BUSY", http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, "REQUEST_TIMEOUT", http.StatusServiceUnavailable},
		{"corrupt", fmt.Errorf("%w: books", persistence.ErrStorageCorrupt), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unreadable record", fmt.Errorf("%w: books \"9\"", persistence.ErrRecordUnreadable), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			if de.Code != tt.code || de.HTTPStatus != tt.status {
				t.Fatalf("ToDomainError = %s/%d, want %s/%d", de.Code, de.HTTPStatus, tt.code, tt.status)
			}
		})
	}
}

func TestStorageFailureMessageIsGeneric(t *testing.T) {
	err := fmt.Errorf("%w: students: unexpected end of JSON input", persistence.ErrStorageCorrupt)
	de := ToDomainError(err)
	if de.Message != "internal server error" {
		t.Errorf("Message = %q leaks the cause", de.Message)
	}
	if !IsStorageFailure(err) {
		t.Error("IsStorageFailure = false")
	}
	if IsStorageFailure(domain.ErrNotFound) {
		t.Error("IsStorageFailure(ErrNotFound) = true")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("ToDomainError(nil) != nil")
	}
}

func TestUnreadableRecordIsStorageFailure(t *testing.T) {
	cause := errors.New("json: cannot unmarshal string into Go struct field Book.copiesAvailable of type int")
	err := fmt.Errorf("%w: books \"9\": %w", persistence.ErrRecordUnreadable, cause)

	if !IsStorageFailure(err) {
		t.Fatal("IsStorageFailure = false for an unreadable record")
	}
	de := ToDomainError(err)
	if de.HTTPStatus != http.StatusInternalServerError || de.Message != "internal server error" {
		t.Fatalf("ToDomainError = %d %q", de.HTTPStatus, de.Message)
	}
	if !errors.Is(de, cause) {
		t.Error("internal error dropped its cause")
	}
}
