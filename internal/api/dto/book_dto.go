package dto

import "github.com/architdhariwal/sms-backend/internal/domain"

// BookAddRequest payload for a new book.
type BookAddRequest struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	ISBN            string `json:"isbn" validate:"required"`
	PublicationYear *int   `json:"publicationYear" validate:"required"`
	Genre           string `json:"genre" validate:"required"`
	CopiesAvailable *int   `json:"copiesAvailable" validate:"required,gte=0"`
}

// Book converts the request into a domain value.
func (r BookAddRequest) Book() domain.Book {
	b := domain.Book{
		Title:  r.Title,
		Author: r.Author,
		ISBN:   r.ISBN,
		Genre:  r.Genre,
	}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	if r.CopiesAvailable != nil {
		b.CopiesAvailable = *r.CopiesAvailable
	}
	return b
}

// BookUpdateRequest is a partial update; nil fields are left untouched.
type BookUpdateRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1"`
	Author          *string `json:"author" validate:"omitnil,min=1"`
	PublicationYear *int    `json:"publicationYear"`
	Genre           *string `json:"genre" validate:"omitnil,min=1"`
	CopiesAvailable *int    `json:"copiesAvailable" validate:"omitnil,gte=0"`
}

// Patch returns the provided fields keyed by their stored names.
func (r BookUpdateRequest) Patch() domain.Patch {
	p := domain.Patch{}
	domain.Set(p, "title", r.Title)
	domain.Set(p, "author", r.Author)
	domain.Set(p, "publicationYear", r.PublicationYear)
	domain.Set(p, "genre", r.Genre)
	domain.Set(p, "copiesAvailable", r.CopiesAvailable)
	return p
}
