package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelfwise/library-api/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

func createTestUser(t *testing.T, db *Database, email string, role entities.UserRole) *entities.User {
	t.Helper()

	user := &entities.User{
		Name:     "Test User",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.CreateUser(user))
	return user
}

func createTestBook(t *testing.T, db *Database, isbn string, copies int) *entities.Book {
	t.Helper()

	book := &entities.Book{
		Title:           "Test Book " + isbn,
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Language:        "English",
	}
	require.NoError(t, db.CreateBook(book))
	return book
}

func reloadBook(t *testing.T, db *Database, id uint) *entities.Book {
	t.Helper()

	book, err := db.GetBookByID(id)
	require.NoError(t, err)
	return book
}

func TestNewDatabase(t *testing.T) {
	t.Run("migrates schema and opens cleanly", func(t *testing.T) {
		db := setupTestDB(t)

		for _, table := range []string{"users", "categories", "authors", "books", "book_authors", "borrowings", "reservations", "reviews"} {
			require.True(t, db.DB.Migrator().HasTable(table), "expected table %s", table)
		}
	})
}
