package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/auth"
	"github.com/shelfwise/library-api/internal/entities"
)

// ReviewStore defines the review operations.
type ReviewStore interface {
	GetBookByID(id uint) (*entities.Book, error)
	GetReviewsForBook(bookID uint, page, limit int) ([]entities.Review, int64, error)
	GetReviewByID(id uint) (*entities.Review, error)
	CreateReview(review *entities.Review) error
	UpdateReview(review *entities.Review) error
	DeleteReview(id uint) error
}

type ReviewsController struct {
	store ReviewStore
}

func NewReviewsController(store ReviewStore) *ReviewsController {
	return &ReviewsController{store: store}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// GetBookReviews lists one page of reviews for a book together with the
// arithmetic mean of the ratings on that page, formatted to one decimal.
// GET /api/v1/books/:id/reviews
func (rc *ReviewsController) GetBookReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := rc.store.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondError(c, err, "get book reviews: load book")
		return
	}

	page, limit := parsePagination(c)
	reviews, total, err := rc.store.GetReviewsForBook(bookID, page, limit)
	if err != nil {
		respondError(c, err, "get book reviews")
		return
	}

	// Mean over the returned page only, not the full rating population.
	averageRating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		averageRating = float64(sum) / float64(len(reviews))
	}

	respondData(c, http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": fmt.Sprintf("%.1f", averageRating),
		"pagination":    newPagination(total, page, limit),
	}, "Reviews fetched successfully")
}

// CreateReview creates a review by the acting user for a book. One review
// per user per book.
// POST /api/v1/books/:id/reviews
func (rc *ReviewsController) CreateReview(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := rc.store.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondError(c, err, "create review: load book")
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide rating")
		return
	}

	review := entities.Review{
		UserID:  user.ID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := rc.store.CreateReview(&review); err != nil {
		respondError(c, err, "create review")
		return
	}

	created, err := rc.store.GetReviewByID(review.ID)
	if err != nil {
		respondError(c, err, "create review: reload")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"review": created}, "Review created successfully")
}

// UpdateReview updates a review. Only the review's owner may update it;
// there is no admin override.
// PUT /api/v1/reviews/:id
func (rc *ReviewsController) UpdateReview(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := rc.store.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Review")
			return
		}
		respondError(c, err, "update review: load")
		return
	}

	if review.UserID != user.ID {
		respondError(c, apierror.Forbidden("Not authorized to update this review"), "")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := rc.store.UpdateReview(review); err != nil {
		respondError(c, err, "update review")
		return
	}

	updated, err := rc.store.GetReviewByID(review.ID)
	if err != nil {
		respondError(c, err, "update review: reload")
		return
	}

	respondData(c, http.StatusOK, gin.H{"review": updated}, "Review updated successfully")
}

// DeleteReview removes a review. Allowed for the owner or an admin.
// DELETE /api/v1/reviews/:id
func (rc *ReviewsController) DeleteReview(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := rc.store.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Review")
			return
		}
		respondError(c, err, "delete review: load")
		return
	}

	if review.UserID != user.ID && user.Role != entities.UserRoleAdmin {
		respondError(c, apierror.Forbidden("Not authorized to delete this review"), "")
		return
	}

	if err := rc.store.DeleteReview(id); err != nil {
		respondError(c, err, "delete review")
		return
	}

	respondData(c, http.StatusOK, nil, "Review deleted successfully")
}
