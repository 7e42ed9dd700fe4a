package database

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/entities"
)

func TestCreateReservation(t *testing.T) {
	t.Run("creates a pending reservation", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)

		assert.Equal(t, entities.ReservationStatusPending, reservation.Status)
		assert.Equal(t, user.ID, reservation.UserID)
		assert.Equal(t, book.ID, reservation.BookID)
		assert.False(t, reservation.ReservedAt.IsZero())
	})

	t.Run("allows reserving a book that is currently in stock", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 5)

		_, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
		// Reserving does not touch the copy counts.
		assert.Equal(t, 5, reloadBook(t, db, book.ID).AvailableCopies)
	})

	t.Run("fails when the book does not exist", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)

		_, err := db.CreateReservation(user.ID, 9999)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Book not found", apiErr.Message)
	})

	t.Run("rejects a duplicate pending reservation", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		_, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)

		_, err = db.CreateReservation(user.ID, book.ID)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "You already have a pending reservation for this book", apiErr.Message)
	})

	t.Run("allows reserving again after cancelling", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
		_, err = db.CancelReservation(reservation.ID, user)
		require.NoError(t, err)

		_, err = db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
	})
}

func TestCancelReservation(t *testing.T) {
	t.Run("cancels a pending reservation", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)

		cancelled, err := db.CancelReservation(reservation.ID, user)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusCancelled, cancelled.Status)
	})

	t.Run("forbids a member cancelling another member's reservation", func(t *testing.T) {
		db := setupTestDB(t)
		alice := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		bob := createTestUser(t, db, "bob@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(alice.ID, book.ID)
		require.NoError(t, err)

		_, err = db.CancelReservation(reservation.ID, bob)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		assert.Equal(t, "Not authorized to cancel this reservation", apiErr.Message)
	})

	t.Run("allows an admin to cancel any reservation", func(t *testing.T) {
		db := setupTestDB(t)
		alice := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		admin := createTestUser(t, db, "admin@library.com", entities.UserRoleAdmin)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(alice.ID, book.ID)
		require.NoError(t, err)

		cancelled, err := db.CancelReservation(reservation.ID, admin)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusCancelled, cancelled.Status)
	})

	t.Run("rejects cancelling a non-pending reservation", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
		_, err = db.FulfillReservation(reservation.ID)
		require.NoError(t, err)

		_, err = db.CancelReservation(reservation.ID, user)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Reservation is already fulfilled or cancelled", apiErr.Message)
	})
}

func TestFulfillReservation(t *testing.T) {
	t.Run("moves a pending reservation to fulfilled", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 2)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)

		fulfilled, err := db.FulfillReservation(reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusFulfilled, fulfilled.Status)
	})

	t.Run("does not create a borrowing or change copy counts", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 2)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
		_, err = db.FulfillReservation(reservation.ID)
		require.NoError(t, err)

		assert.Equal(t, 2, reloadBook(t, db, book.ID).AvailableCopies)

		var borrowings int64
		require.NoError(t, db.DB.Model(&entities.Borrowing{}).Count(&borrowings).Error)
		assert.Zero(t, borrowings)
	})

	t.Run("rejects fulfilling a non-pending reservation", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		reservation, err := db.CreateReservation(user.ID, book.ID)
		require.NoError(t, err)
		_, err = db.CancelReservation(reservation.ID, user)
		require.NoError(t, err)

		_, err = db.FulfillReservation(reservation.ID)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Reservation is not pending", apiErr.Message)
	})
}

func TestGetAllReservations(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
	bob := createTestUser(t, db, "bob@test.com", entities.UserRoleMember)
	first := createTestBook(t, db, "isbn-1", 1)
	second := createTestBook(t, db, "isbn-2", 1)

	aliceRes, err := db.CreateReservation(alice.ID, first.ID)
	require.NoError(t, err)
	_, err = db.CreateReservation(bob.ID, second.ID)
	require.NoError(t, err)
	_, err = db.CancelReservation(aliceRes.ID, alice)
	require.NoError(t, err)

	all, total, err := db.GetAllReservations(ReservationFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	aliceOnly, total, err := db.GetAllReservations(ReservationFilter{UserID: alice.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, aliceOnly, 1)
	assert.Equal(t, alice.ID, aliceOnly[0].UserID)

	pendingOnly, total, err := db.GetAllReservations(ReservationFilter{Status: entities.ReservationStatusPending, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pendingOnly, 1)
	assert.Equal(t, bob.ID, pendingOnly[0].UserID)
}
