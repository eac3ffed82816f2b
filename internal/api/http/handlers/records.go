package handlers

import (
	"context"

	"github.com/architdhariwal/sms-backend/internal/domain"
)

// Records is the repository surface the CRUD handlers need.
type Records[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByKey(ctx context.Context, key string) (T, error)
	Insert(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, key string, patch domain.Patch) (T, error)
	Delete(ctx context.Context, key string) error
}
