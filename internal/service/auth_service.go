package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/architdhariwal/sms-backend/internal/auth"
	"github.com/architdhariwal/sms-backend/internal/domain"
)

// StudentStore is what the auth flows need from the student repository.
type StudentStore interface {
	FindByKey(ctx context.Context, admissionNumber string) (domain.Student, error)
	RegisterWithCredential(ctx context.Context, student domain.Student, rawPassword string) (domain.Student, error)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	students StudentStore
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	Students StudentStore
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		students: deps.Students,
		tokenMgr: deps.Tokens,
		logger:   logger,
	}
}

// RegisterStudent stores a new student with a hashed credential.
func (s *AuthService) RegisterStudent(ctx context.Context, student domain.Student, password string) (domain.Student, error) {
	return s.students.RegisterWithCredential(ctx, student, password)
}

// Login checks the password of a student and issues an access token. An
// unknown admission number and a wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, admissionNumber, password string) (domain.AccessToken, error) {
	student, err := s.students.FindByKey(ctx, admissionNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AccessToken{}, domain.ErrInvalidCredentials
		}
		return domain.AccessToken{}, err
	}

	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored credential unusable",
				zap.String("admission_number", admissionNumber),
				zap.Error(err))
		}
		return domain.AccessToken{}, domain.ErrInvalidCredentials
	}

	return s.tokenMgr.Issue(student.AdmissionNumber)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
