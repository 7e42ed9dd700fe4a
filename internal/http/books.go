package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/database"
	"github.com/shelfwise/library-api/internal/entities"
)

// BookStore defines the catalog operations for books.
type BookStore interface {
	GetAllBooks(filter database.BookFilter) ([]entities.Book, int64, error)
	GetBookByID(id uint) (*entities.Book, error)
	FindBookByISBN(isbn string) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book) error
	ReplaceBookAuthors(book *entities.Book, authorIDs []uint) error
	DeleteBook(id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title         string `json:"title" binding:"required"`
	ISBN          string `json:"isbn" binding:"required"`
	Description   string `json:"description"`
	TotalCopies   int    `json:"total_copies"`
	CategoryID    uint   `json:"category_id"`
	AuthorIDs     []uint `json:"author_ids"`
	PublishedYear int    `json:"published_year"`
	Language      string `json:"language"`
}

// updateBookRequest uses pointer fields so that only fields present in the
// body overwrite the stored values. Zero values like 0 or "" are applied
// when supplied explicitly.
type updateBookRequest struct {
	Title         *string `json:"title"`
	ISBN          *string `json:"isbn"`
	Description   *string `json:"description"`
	TotalCopies   *int    `json:"total_copies"`
	CategoryID    *uint   `json:"category_id"`
	AuthorIDs     *[]uint `json:"author_ids"`
	PublishedYear *int    `json:"published_year"`
	Language      *string `json:"language"`
}

// GetAllBooks lists books with optional filters and pagination.
// GET /api/v1/books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := database.BookFilter{
		AvailableOnly: c.Query("available") == "true",
		Search:        c.Query("search"),
		SortBy:        c.DefaultQuery("sortBy", "createdAt"),
		Order:         c.DefaultQuery("order", "DESC"),
		Page:          page,
		Limit:         limit,
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			respondBadRequest(c, "Invalid category")
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	books, total, err := bc.store.GetAllBooks(filter)
	if err != nil {
		respondError(c, err, "get all books")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"books":      books,
		"pagination": newPagination(total, page, limit),
	}, "Books fetched successfully")
}

// GetBook returns a single book with its category and authors.
// GET /api/v1/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondError(c, err, "get book")
		return
	}

	respondData(c, http.StatusOK, gin.H{"book": book}, "Book fetched successfully")
}

// CreateBook creates a book; available copies start equal to total copies.
// POST /api/v1/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide title and isbn")
		return
	}

	existing, err := bc.store.FindBookByISBN(req.ISBN)
	if err != nil {
		respondError(c, err, "create book: check isbn")
		return
	}
	if existing != nil {
		respondError(c, apierror.BadRequest("Book with this ISBN already exists"), "")
		return
	}

	if req.TotalCopies <= 0 {
		req.TotalCopies = 1
	}
	if req.Language == "" {
		req.Language = "English"
	}

	book := entities.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		Description:     req.Description,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		PublishedYear:   req.PublishedYear,
		Language:        req.Language,
		CategoryID:      req.CategoryID,
	}
	if err := bc.store.CreateBook(&book); err != nil {
		respondError(c, err, "create book")
		return
	}

	if len(req.AuthorIDs) > 0 {
		if err := bc.store.ReplaceBookAuthors(&book, req.AuthorIDs); err != nil {
			respondError(c, err, "create book: set authors")
			return
		}
	}

	created, err := bc.store.GetBookByID(book.ID)
	if err != nil {
		respondError(c, err, "create book: reload")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"book": created}, "Book created successfully")
}

// UpdateBook partially updates a book. Only fields present in the body are
// applied; author_ids replaces the author set wholesale.
// PUT /api/v1/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondError(c, err, "update book: load")
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.TotalCopies != nil {
		book.TotalCopies = *req.TotalCopies
	}
	if req.CategoryID != nil {
		book.CategoryID = *req.CategoryID
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}
	if req.Language != nil {
		book.Language = *req.Language
	}

	if err := bc.store.UpdateBook(book); err != nil {
		respondError(c, err, "update book")
		return
	}

	if req.AuthorIDs != nil {
		if err := bc.store.ReplaceBookAuthors(book, *req.AuthorIDs); err != nil {
			respondError(c, err, "update book: set authors")
			return
		}
	}

	updated, err := bc.store.GetBookByID(book.ID)
	if err != nil {
		respondError(c, err, "update book: reload")
		return
	}

	respondData(c, http.StatusOK, gin.H{"book": updated}, "Book updated successfully")
}

// DeleteBook removes a book.
// DELETE /api/v1/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.store.GetBookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondError(c, err, "delete book: load")
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		respondError(c, err, "delete book")
		return
	}

	respondData(c, http.StatusOK, nil, "Book deleted successfully")
}
