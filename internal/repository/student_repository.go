package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/architdhariwal/sms-backend/internal/auth"
	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/events"
)

// StudentSchema keys students by admission number and keeps the credential
// hash out of generic updates.
var StudentSchema = Schema{
	Collection: domain.StudentCollection,
	KeyField:   "admissionNumber",
	Immutable:  []string{"password"},
}

// StudentRepository persists students in the students collection.
type StudentRepository struct {
	*Collection[domain.Student]
	bcryptCost int
}

// NewStudentRepository returns a file-backed implementation.
func NewStudentRepository(store DocumentStore, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *StudentRepository {
	return &StudentRepository{
		Collection: NewCollection[domain.Student](store, StudentSchema, dispatcher, logger),
		bcryptCost: bcryptCost,
	}
}

// RegisterWithCredential hashes rawPassword and inserts the student with the hash.
// The duplicate check inside Insert still decides; the early lookup only
// avoids hashing for a key that is already taken.
func (r *StudentRepository) RegisterWithCredential(ctx context.Context, student domain.Student, rawPassword string) (domain.Student, error) {
	if len(rawPassword) < auth.MinPasswordLength {
		return domain.Student{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidRecord, auth.MinPasswordLength)
	}
	if student.AdmissionNumber == "" {
		return domain.Student{}, fmt.Errorf("%w: admissionNumber is required", domain.ErrInvalidRecord)
	}

	if _, err := r.FindByKey(ctx, student.AdmissionNumber); err == nil {
		return domain.Student{}, fmt.Errorf("%w: admissionNumber %q already exists", domain.ErrDuplicateKey, student.AdmissionNumber)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Student{}, err
	}

	hash, err := auth.HashPassword(rawPassword, r.bcryptCost)
	if err != nil {
		return domain.Student{}, fmt.Errorf("hash password: %w", err)
	}
	student.PasswordHash = hash
	return r.Insert(ctx, student)
}
