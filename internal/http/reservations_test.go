package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/library-api/internal/entities"
)

type reservationData struct {
	Reservation entities.Reservation `json:"reservation"`
}

type reservationListData struct {
	Reservations []entities.Reservation `json:"reservations"`
	Pagination   Pagination             `json:"pagination"`
}

func (ts *testServer) reserve(t *testing.T, token string, bookID uint) entities.Reservation {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/reservations", token, gin.H{"book_id": bookID})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var data reservationData
	decodeData(t, rec, &data)
	return data.Reservation
}

func TestCreateReservationEndpoint(t *testing.T) {
	t.Run("creates a pending reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 2)

		reservation := ts.reserve(t, token, book.ID)
		assert.Equal(t, entities.ReservationStatusPending, reservation.Status)
		// Reserving does not consume a copy.
		assert.Equal(t, 2, ts.bookAvailability(t, book.ID))
	})

	t.Run("rejects a duplicate pending reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		ts.reserve(t, token, book.ID)

		rec := ts.do(t, http.MethodPost, "/api/v1/reservations", token, gin.H{"book_id": book.ID})
		assertErrorEnvelope(t, rec, http.StatusBadRequest, "You already have a pending reservation for this book")
	})

	t.Run("404s on an unknown book", func(t *testing.T) {
		ts := setupTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)

		rec := ts.do(t, http.MethodPost, "/api/v1/reservations", token, gin.H{"book_id": 9999})
		assertErrorEnvelope(t, rec, http.StatusNotFound, "Book not found")
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts := setupTestServer(t)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)

		rec := ts.do(t, http.MethodPost, "/api/v1/reservations", "", gin.H{"book_id": book.ID})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCancelReservationEndpoint(t *testing.T) {
	t.Run("owner cancels their pending reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, token, book.ID)

		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/cancel", reservation.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var data reservationData
		env := decodeData(t, rec, &data)
		assert.Equal(t, "Reservation cancelled successfully", env.Message)
		assert.Equal(t, entities.ReservationStatusCancelled, data.Reservation.Status)
	})

	t.Run("forbids a member cancelling another member's reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		bob, _ := ts.register(t, "Bob", "bob@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, alice, book.ID)

		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/cancel", reservation.ID), bob, nil)
		assertErrorEnvelope(t, rec, http.StatusForbidden, "Not authorized to cancel this reservation")
	})

	t.Run("rejects cancelling an already cancelled reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		token, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, token, book.ID)

		path := fmt.Sprintf("/api/v1/reservations/%d/cancel", reservation.ID)
		rec := ts.do(t, http.MethodPatch, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPatch, path, token, nil)
		assertErrorEnvelope(t, rec, http.StatusBadRequest, "Reservation is already fulfilled or cancelled")
	})
}

func TestFulfillReservationEndpoint(t *testing.T) {
	t.Run("staff fulfill a pending reservation without touching inventory", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		librarian, _ := ts.register(t, "Libby", "librarian@library.com", entities.UserRoleLibrarian)
		book := ts.seedBook(t, "Dune", "isbn-1", 2)
		reservation := ts.reserve(t, alice, book.ID)

		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/fulfill", reservation.ID), librarian, nil)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var data reservationData
		env := decodeData(t, rec, &data)
		assert.Equal(t, "Reservation fulfilled successfully", env.Message)
		assert.Equal(t, entities.ReservationStatusFulfilled, data.Reservation.Status)
		assert.Equal(t, 2, ts.bookAvailability(t, book.ID))
	})

	t.Run("forbids members, including the owner", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, alice, book.ID)

		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/fulfill", reservation.ID), alice, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects fulfilling a cancelled reservation", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		admin, _ := ts.register(t, "Admin", "admin@library.com", entities.UserRoleAdmin)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, alice, book.ID)

		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/cancel", reservation.ID), alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/fulfill", reservation.ID), admin, nil)
		assertErrorEnvelope(t, rec, http.StatusBadRequest, "Reservation is not pending")
	})
}

func TestGetReservationsEndpoint(t *testing.T) {
	t.Run("members see only their own reservations", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		bob, _ := ts.register(t, "Bob", "bob@test.com", entities.UserRoleMember)
		first := ts.seedBook(t, "Dune", "isbn-1", 1)
		second := ts.seedBook(t, "Cosmos", "isbn-2", 1)
		ts.reserve(t, alice, first.ID)
		ts.reserve(t, bob, second.ID)

		rec := ts.do(t, http.MethodGet, "/api/v1/reservations", alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var data reservationListData
		decodeData(t, rec, &data)
		require.Len(t, data.Reservations, 1)
		assert.Equal(t, first.ID, data.Reservations[0].BookID)
	})

	t.Run("members cannot fetch another member's reservation by ID", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		bob, _ := ts.register(t, "Bob", "bob@test.com", entities.UserRoleMember)
		book := ts.seedBook(t, "Dune", "isbn-1", 1)
		reservation := ts.reserve(t, alice, book.ID)

		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", reservation.ID), bob, nil)
		assertErrorEnvelope(t, rec, http.StatusForbidden, "Not authorized to access this reservation")
	})

	t.Run("staff filter by status", func(t *testing.T) {
		ts := setupTestServer(t)
		alice, _ := ts.register(t, "Alice", "alice@test.com", entities.UserRoleMember)
		librarian, _ := ts.register(t, "Libby", "librarian@library.com", entities.UserRoleLibrarian)
		first := ts.seedBook(t, "Dune", "isbn-1", 1)
		second := ts.seedBook(t, "Cosmos", "isbn-2", 1)
		ts.reserve(t, alice, first.ID)
		cancelled := ts.reserve(t, librarian, second.ID)
		rec := ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/cancel", cancelled.ID), librarian, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/reservations?status=pending", librarian, nil)
		var data reservationListData
		decodeData(t, rec, &data)
		require.Len(t, data.Reservations, 1)
		assert.Equal(t, entities.ReservationStatusPending, data.Reservations[0].Status)
	})
}
