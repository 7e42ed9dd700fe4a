package database

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/entities"
)

func TestCreateReview(t *testing.T) {
	t.Run("creates a review", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		review := &entities.Review{
			UserID:  user.ID,
			BookID:  book.ID,
			Rating:  4,
			Comment: "Solid read.",
		}
		require.NoError(t, db.CreateReview(review))
		assert.NotZero(t, review.ID)
	})

	t.Run("rejects a second review by the same user for the same book", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		require.NoError(t, db.CreateReview(&entities.Review{UserID: user.ID, BookID: book.ID, Rating: 4}))

		err := db.CreateReview(&entities.Review{UserID: user.ID, BookID: book.ID, Rating: 2})
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "You have already reviewed this book", apiErr.Message)
	})

	t.Run("allows different users to review the same book", func(t *testing.T) {
		db := setupTestDB(t)
		alice := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
		bob := createTestUser(t, db, "bob@test.com", entities.UserRoleMember)
		book := createTestBook(t, db, "isbn-1", 1)

		require.NoError(t, db.CreateReview(&entities.Review{UserID: alice.ID, BookID: book.ID, Rating: 5}))
		require.NoError(t, db.CreateReview(&entities.Review{UserID: bob.ID, BookID: book.ID, Rating: 3}))
	})
}

func TestGetReviewsForBook(t *testing.T) {
	t.Run("returns reviews newest first with the total count", func(t *testing.T) {
		db := setupTestDB(t)
		book := createTestBook(t, db, "isbn-1", 1)
		for i, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
			user := createTestUser(t, db, email, entities.UserRoleMember)
			require.NoError(t, db.CreateReview(&entities.Review{UserID: user.ID, BookID: book.ID, Rating: i + 1}))
		}

		reviews, total, err := db.GetReviewsForBook(book.ID, 1, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, reviews, 2)
		assert.NotEmpty(t, reviews[0].User.Email)
	})

	t.Run("returns an empty page for a book without reviews", func(t *testing.T) {
		db := setupTestDB(t)
		book := createTestBook(t, db, "isbn-1", 1)

		reviews, total, err := db.GetReviewsForBook(book.ID, 1, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, reviews)
	})
}

func TestUpdateReview(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
	book := createTestBook(t, db, "isbn-1", 1)

	review := &entities.Review{UserID: user.ID, BookID: book.ID, Rating: 3, Comment: "Fine."}
	require.NoError(t, db.CreateReview(review))

	review.Rating = 5
	review.Comment = "On second thought, excellent."
	require.NoError(t, db.UpdateReview(review))

	reloaded, err := db.GetReviewByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Rating)
	assert.Equal(t, "On second thought, excellent.", reloaded.Comment)
}

func TestDeleteReview(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice@test.com", entities.UserRoleMember)
	book := createTestBook(t, db, "isbn-1", 1)

	review := &entities.Review{UserID: user.ID, BookID: book.ID, Rating: 3}
	require.NoError(t, db.CreateReview(review))

	require.NoError(t, db.DeleteReview(review.ID))

	_, err := db.GetReviewByID(review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
