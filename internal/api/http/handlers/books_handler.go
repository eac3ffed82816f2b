package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/architdhariwal/sms-backend/internal/api/dto"
	"github.com/architdhariwal/sms-backend/internal/domain"
)

const (
	bookResource  = "Book"
	bookDuplicate = "ISBN already exists"
)

// BooksHandler exposes book CRUD.
type BooksHandler struct {
	books Records[domain.Book]
}

// NewBooksHandler constructs handler.
func NewBooksHandler(books Records[domain.Book]) *BooksHandler {
	return &BooksHandler{books: books}
}

// Add handles POST /api/books/add.
func (h *BooksHandler) Add(c *fiber.Ctx) error {
	var req dto.BookAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.books.Insert(c.UserContext(), req.Book())
	if err != nil {
		return repoError(err, bookResource, bookDuplicate)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Book added successfully",
		"data":    fiber.Map{"book": book},
	})
}

// List handles GET /api/books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	books, err := h.books.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(books)
}

// Get handles GET /api/books/:isbn.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	book, err := h.books.FindByKey(c.UserContext(), c.Params("isbn"))
	if err != nil {
		return repoError(err, bookResource, bookDuplicate)
	}
	return c.JSON(book)
}

// Update handles PUT /api/books/:isbn.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	var req dto.BookUpdateRequest
	if err := bindPatch(c, &req); err != nil {
		return err
	}

	book, err := h.books.Update(c.UserContext(), c.Params("isbn"), req.Patch())
	if err != nil {
		return repoError(err, bookResource, bookDuplicate)
	}
	return c.JSON(fiber.Map{
		"message": "Book updated successfully",
		"book":    book,
	})
}

// Delete handles DELETE /api/books/:isbn.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	if err := h.books.Delete(c.UserContext(), c.Params("isbn")); err != nil {
		return repoError(err, bookResource, bookDuplicate)
	}
	return c.JSON(dto.MessageResponse{Message: "Book deleted successfully"})
}
