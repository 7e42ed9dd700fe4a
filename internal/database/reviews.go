package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/entities"
)

// GetReviewsForBook returns one page of reviews for the book, newest first,
// along with the total review count.
func (d *Database) GetReviewsForBook(bookID uint, page, limit int) ([]entities.Review, int64, error) {
	query := d.DB.Model(&entities.Review{}).Where("book_id = ?", bookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []entities.Review
	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (d *Database) GetReviewByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := d.DB.Preload("User").Preload("Book").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateReview creates a review, rejecting a second review by the same user
// for the same book. The duplicate check and the insert share a transaction.
func (d *Database) CreateReview(review *entities.Review) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		var existing entities.Review
		err := tx.Where("user_id = ? AND book_id = ?", review.UserID, review.BookID).
			First(&existing).Error
		if err == nil {
			return apierror.BadRequest("You have already reviewed this book")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(review).Error
	})
}

func (d *Database) UpdateReview(review *entities.Review) error {
	return d.DB.Omit("User", "Book").Save(review).Error
}

func (d *Database) DeleteReview(id uint) error {
	return d.DB.Delete(&entities.Review{}, id).Error
}
