package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/entities"
)

// ReservationFilter scopes a reservation listing. A zero UserID means no
// user scoping (admin/librarian view).
type ReservationFilter struct {
	UserID uint
	Status entities.ReservationStatus
	Page   int
	Limit  int
}

func (d *Database) GetAllReservations(filter ReservationFilter) ([]entities.Reservation, int64, error) {
	query := d.DB.Model(&entities.Reservation{})

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

	var reservations []entities.Reservation
	err := query.
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&reservations).Error
	return reservations, total, err
}

func (d *Database) GetReservationByID(id uint) (*entities.Reservation, error) {
	var reservation entities.Reservation
	err := d.DB.Preload("User").Preload("Book").First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CreateReservation creates a pending reservation. A reservation may be
// created regardless of the book's current availability; only a duplicate
// pending reservation by the same user is rejected.
func (d *Database) CreateReservation(userID, bookID uint) (*entities.Reservation, error) {
	var reservationID uint

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Book not found")
			}
			return err
		}

		var existing entities.Reservation
		err := tx.Where("user_id = ? AND book_id = ? AND status = ?",
			userID, bookID, entities.ReservationStatusPending).First(&existing).Error
		if err == nil {
			return apierror.BadRequest("You already have a pending reservation for this book")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reservation := entities.Reservation{
			UserID:     userID,
			BookID:     bookID,
			ReservedAt: time.Now(),
			Status:     entities.ReservationStatusPending,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		reservationID = reservation.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.GetReservationByID(reservationID)
}

// CancelReservation moves a pending reservation to cancelled. Members may
// only cancel their own reservations.
func (d *Database) CancelReservation(reservationID uint, actingUser *entities.User) (*entities.Reservation, error) {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var reservation entities.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Reservation not found")
			}
			return err
		}

		if actingUser.Role == entities.UserRoleMember && reservation.UserID != actingUser.ID {
			return apierror.Forbidden("Not authorized to cancel this reservation")
		}

		if reservation.Status != entities.ReservationStatusPending {
			return apierror.BadRequest("Reservation is already fulfilled or cancelled")
		}

		return tx.Model(&reservation).
			Update("status", entities.ReservationStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	return d.GetReservationByID(reservationID)
}

// FulfillReservation moves a pending reservation to fulfilled. It does not
// create a borrowing or touch the book's copy counts; handing the copy over
// is a separate, manual step.
func (d *Database) FulfillReservation(reservationID uint) (*entities.Reservation, error) {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var reservation entities.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Reservation not found")
			}
			return err
		}

		if reservation.Status != entities.ReservationStatusPending {
			return apierror.BadRequest("Reservation is not pending")
		}

		return tx.Model(&reservation).
			Update("status", entities.ReservationStatusFulfilled).Error
	})
	if err != nil {
		return nil, err
	}

	return d.GetReservationByID(reservationID)
}
