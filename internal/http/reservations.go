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

// ReservationStore defines the reservation lifecycle operations.
type ReservationStore interface {
	GetAllReservations(filter database.ReservationFilter) ([]entities.Reservation, int64, error)
	GetReservationByID(id uint) (*entities.Reservation, error)
	CreateReservation(userID, bookID uint) (*entities.Reservation, error)
	CancelReservation(reservationID uint, actingUser *entities.User) (*entities.Reservation, error)
	FulfillReservation(reservationID uint) (*entities.Reservation, error)
}

type ReservationsController struct {
	store ReservationStore
}

func NewReservationsController(store ReservationStore) *ReservationsController {
	return &ReservationsController{store: store}
}

type reserveRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// GetAllReservations lists reservations. Members see only their own;
// admins and librarians see all. Optional status filter.
// GET /api/v1/reservations
func (rc *ReservationsController) GetAllReservations(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	page, limit := parsePagination(c)
	filter := database.ReservationFilter{
		Status: entities.ReservationStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}
	if user.Role == entities.UserRoleMember {
		filter.UserID = user.ID
	}

	reservations, total, err := rc.store.GetAllReservations(filter)
	if err != nil {
		respondError(c, err, "get all reservations")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination":   newPagination(total, page, limit),
	}, "Reservations fetched successfully")
}

// GetReservation returns a single reservation. Members can only access
// their own.
// GET /api/v1/reservations/:id
func (rc *ReservationsController) GetReservation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.store.GetReservationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Reservation")
			return
		}
		respondError(c, err, "get reservation")
		return
	}

	if user.Role == entities.UserRoleMember && reservation.UserID != user.ID {
		respondError(c, apierror.Forbidden("Not authorized to access this reservation"), "")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reservation": reservation}, "Reservation fetched successfully")
}

// CreateReservation creates a pending reservation for the acting user.
// POST /api/v1/reservations
func (rc *ReservationsController) CreateReservation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide book_id")
		return
	}

	reservation, err := rc.store.CreateReservation(user.ID, req.BookID)
	if err != nil {
		respondError(c, err, "create reservation")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"reservation": reservation}, "Reservation created successfully")
}

// CancelReservation moves a pending reservation to cancelled.
// PATCH /api/v1/reservations/:id/cancel
func (rc *ReservationsController) CancelReservation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.store.CancelReservation(id, user)
	if err != nil {
		respondError(c, err, "cancel reservation")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reservation": reservation}, "Reservation cancelled successfully")
}

// FulfillReservation moves a pending reservation to fulfilled. Restricted
// to admin/librarian by route middleware. Fulfillment does not create a
// borrowing or touch copy counts.
// PATCH /api/v1/reservations/:id/fulfill
func (rc *ReservationsController) FulfillReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.store.FulfillReservation(id)
	if err != nil {
		respondError(c, err, "fulfill reservation")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reservation": reservation}, "Reservation fulfilled successfully")
}
