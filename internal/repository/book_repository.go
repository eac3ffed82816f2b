package repository

import (
	"go.uber.org/zap"

	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/events"
)

// BookSchema keys books by ISBN.
var BookSchema = Schema{
	Collection: domain.BookCollection,
	KeyField:   "isbn",
}

// BookRepository persists books in the books collection.
type BookRepository = Collection[domain.Book]

// NewBookRepository returns a file-backed implementation.
func NewBookRepository(store DocumentStore, dispatcher events.Dispatcher, logger *zap.Logger) *BookRepository {
	return NewCollection[domain.Book](store, BookSchema, dispatcher, logger)
}
