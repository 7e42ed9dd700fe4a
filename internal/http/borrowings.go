package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/auth"
	"github.com/shelfwise/library-api/internal/database"
	"github.com/shelfwise/library-api/internal/entities"
)

// BorrowingStore defines the borrowing lifecycle operations.
type BorrowingStore interface {
	GetAllBorrowings(filter database.BorrowingFilter) ([]entities.Borrowing, int64, error)
	GetBorrowingByID(id uint) (*entities.Borrowing, error)
	BorrowBook(userID, bookID uint) (*entities.Borrowing, error)
	ReturnBook(borrowingID uint, actingUser *entities.User) (*entities.Borrowing, error)
}

type BorrowingsController struct {
	store BorrowingStore
}

func NewBorrowingsController(store BorrowingStore) *BorrowingsController {
	return &BorrowingsController{store: store}
}

type borrowRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// GetAllBorrowings lists borrowings. Members see only their own; admins and
// librarians see all. Optional status filter.
// GET /api/v1/borrowings
func (bc *BorrowingsController) GetAllBorrowings(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	page, limit := parsePagination(c)
	filter := database.BorrowingFilter{
		Status: entities.BorrowingStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	if user.Role == entities.UserRoleMember {
		filter.UserID = user.ID
	}

	borrowings, total, err := bc.store.GetAllBorrowings(filter)
	if err != nil {
		respondError(c, err, "get all borrowings")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"borrowings": borrowings,
		"pagination": newPagination(total, page, limit),
	}, "Borrowings fetched successfully")
}

// GetBorrowing returns a single borrowing. Members can only access their own.
// GET /api/v1/borrowings/:id
func (bc *BorrowingsController) GetBorrowing(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrowing, err := bc.store.GetBorrowingByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Borrowing")
			return
		}
		respondError(c, err, "get borrowing")
		return
	}

	if user.Role == entities.UserRoleMember && borrowing.UserID != user.ID {
		respondError(c, apierror.Forbidden("Not authorized to access this borrowing"), "")
		return
	}

	respondData(c, http.StatusOK, gin.H{"borrowing": borrowing}, "Borrowing fetched successfully")
}

// BorrowBook creates an active borrowing for the acting user.
// POST /api/v1/borrowings
func (bc *BorrowingsController) BorrowBook(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide book_id")
		return
	}

	borrowing, err := bc.store.BorrowBook(user.ID, req.BookID)
	if err != nil {
		respondError(c, err, "borrow book")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"borrowing": borrowing}, "Book borrowed successfully")
}

// ReturnBook marks a borrowing as returned.
// PATCH /api/v1/borrowings/:id/return
func (bc *BorrowingsController) ReturnBook(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrowing, err := bc.store.ReturnBook(id, user)
	if err != nil {
		respondError(c, err, "return book")
		return
	}

	respondData(c, http.StatusOK, gin.H{"borrowing": borrowing}, "Book returned successfully")
}
