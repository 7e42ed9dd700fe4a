package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/config"
	"github.com/shelfwise/library-api/internal/entities"
)

// BorrowingFilter scopes a borrowing listing. A zero UserID means no user
// scoping (admin/librarian view).
type BorrowingFilter struct {
	UserID uint
	Status entities.BorrowingStatus
	Page   int
	Limit  int
}

func (d *Database) GetAllBorrowings(filter BorrowingFilter) ([]entities.Borrowing, int64, error) {
	query := d.DB.Model(&entities.Borrowing{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var borrowings []entities.Borrowing
	err := query.
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&borrowings).Error
	return borrowings, total, err
}

func (d *Database) GetBorrowingByID(id uint) (*entities.Borrowing, error) {
	var borrowing entities.Borrowing
	err := d.DB.Preload("User").Preload("Book").First(&borrowing, id).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// BorrowBook creates an active borrowing for the user and decrements the
// book's available copy count. The existence check, the duplicate-borrowing
// check, the insert and the decrement all run in one transaction; the
// decrement is guarded by available_copies > 0 so two concurrent requests
// for the last copy cannot both succeed.
func (d *Database) BorrowBook(userID, bookID uint) (*entities.Borrowing, error) {
	var borrowingID uint

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Book not found")
			}
			return err
		}

		if book.AvailableCopies <= 0 {
			return apierror.BadRequest("Book is not available for borrowing")
		}

		var existing entities.Borrowing
		err := tx.Where("user_id = ? AND book_id = ? AND status = ?",
			userID, bookID, entities.BorrowingStatusActive).First(&existing).Error
		if err == nil {
			return apierror.BadRequest("You already have an active borrowing for this book")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		borrowing := entities.Borrowing{
			UserID:     userID,
			BookID:     bookID,
			BorrowedAt: now,
			DueDate:    now.AddDate(0, 0, config.BorrowingPeriodDays),
			Status:     entities.BorrowingStatusActive,
		}
		if err := tx.Create(&borrowing).Error; err != nil {
			return err
		}

		res := tx.Model(&entities.Book{}).
			Where("id = ? AND available_copies > 0", bookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierror.BadRequest("Book is not available for borrowing")
		}

		borrowingID = borrowing.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.GetBorrowingByID(borrowingID)
}

// ReturnBook marks an active borrowing as returned and increments the
// book's available copy count, atomically. The acting user must own the
// borrowing unless they are an admin or librarian.
func (d *Database) ReturnBook(borrowingID uint, actingUser *entities.User) (*entities.Borrowing, error) {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var borrowing entities.Borrowing
		if err := tx.First(&borrowing, borrowingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Borrowing not found")
			}
			return err
		}

		if actingUser.Role == entities.UserRoleMember && borrowing.UserID != actingUser.ID {
			return apierror.Forbidden("Not authorized to return this borrowing")
		}

		if borrowing.Status == entities.BorrowingStatusReturned {
			return apierror.BadRequest("Book already returned")
		}

		// Guard on status so a racing second return rolls back instead of
		// incrementing the copy count twice.
		now := time.Now()
		res := tx.Model(&entities.Borrowing{}).
			Where("id = ? AND status <> ?", borrowingID, entities.BorrowingStatusReturned).
			Updates(map[string]any{
				"returned_at": now,
				"status":      entities.BorrowingStatusReturned,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierror.BadRequest("Book already returned")
		}

		return tx.Model(&entities.Book{}).
			Where("id = ?", borrowing.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return d.GetBorrowingByID(borrowingID)
}
