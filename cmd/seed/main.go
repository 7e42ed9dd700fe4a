// Command seed wipes the database and repopulates it with demo data:
// users for each role, a small catalog and sample borrowings, reviews and
// reservations.
// Usage: go run ./cmd/seed [-db path/to/library.db]
package main

import (
	"flag"
	"log"
	"time"

	"github.com/shelfwise/library-api/internal/auth"
	"github.com/shelfwise/library-api/internal/config"
	"github.com/shelfwise/library-api/internal/database"
	"github.com/shelfwise/library-api/internal/entities"
)

const seedPassword = "password123"

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
	log.Println("Test credentials:")
	log.Println("  Admin:     admin@library.com / " + seedPassword)
	log.Println("  Librarian: librarian@library.com / " + seedPassword)
	log.Println("  Member:    alice@test.com / " + seedPassword)
}

func seed(db *database.Database) error {
	// Clear existing data, children first
	for _, model := range []any{
		&entities.Review{},
		&entities.Reservation{},
		&entities.Borrowing{},
		&entities.BookAuthor{},
		&entities.Book{},
		&entities.Author{},
		&entities.Category{},
		&entities.User{},
	} {
		if err := db.DB.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}

	hash, err := auth.HashPassword(seedPassword, 10)
	if err != nil {
		return err
	}

	users := []entities.User{
		{Name: "Admin User", Email: "admin@library.com", Password: hash, Role: entities.UserRoleAdmin},
		{Name: "John Librarian", Email: "librarian@library.com", Password: hash, Role: entities.UserRoleLibrarian},
		{Name: "Alice Member", Email: "alice@test.com", Password: hash, Role: entities.UserRoleMember},
		{Name: "Bob Member", Email: "bob@test.com", Password: hash, Role: entities.UserRoleMember},
		{Name: "Charlie Member", Email: "charlie@test.com", Password: hash, Role: entities.UserRoleMember},
	}
	if err := db.DB.Create(&users).Error; err != nil {
		return err
	}
	log.Printf("Created %d users", len(users))

	categories := []entities.Category{
		{Name: "Fiction", Description: "Fictional literature and novels"},
		{Name: "Science Fiction", Description: "Science fiction and fantasy novels"},
		{Name: "Mystery", Description: "Mystery and thriller books"},
		{Name: "Biography", Description: "Biographies and memoirs"},
		{Name: "Science", Description: "Scientific and educational books"},
		{Name: "History", Description: "Historical books and documentaries"},
	}
	if err := db.DB.Create(&categories).Error; err != nil {
		return err
	}
	log.Printf("Created %d categories", len(categories))

	authors := []entities.Author{
		{FirstName: "J.R.R.", LastName: "Tolkien", Bio: "English writer and philologist, best known for The Hobbit and The Lord of the Rings", Country: "United Kingdom"},
		{FirstName: "George", LastName: "Orwell", Bio: "English novelist and essayist, known for 1984 and Animal Farm", Country: "United Kingdom"},
		{FirstName: "Agatha", LastName: "Christie", Bio: "English writer known for detective novels", Country: "United Kingdom"},
		{FirstName: "Isaac", LastName: "Asimov", Bio: "American writer and professor, prolific author of science fiction", Country: "United States"},
		{FirstName: "Stephen", LastName: "Hawking", Bio: "English theoretical physicist and cosmologist", Country: "United Kingdom"},
		{FirstName: "Yuval Noah", LastName: "Harari", Bio: "Israeli historian and author", Country: "Israel"},
		{FirstName: "Malcolm", LastName: "Gladwell", Bio: "Canadian journalist and author", Country: "Canada"},
		{FirstName: "Frank", LastName: "Herbert", Bio: "American science fiction author, best known for Dune", Country: "United States"},
	}
	if err := db.DB.Create(&authors).Error; err != nil {
		return err
	}
	log.Printf("Created %d authors", len(authors))

	books := []entities.Book{
		{Title: "The Lord of the Rings", ISBN: "978-0544003415", Description: "Epic high-fantasy novel following the quest to destroy the One Ring", TotalCopies: 5, AvailableCopies: 3, PublishedYear: 1954, Language: "English", CategoryID: categories[1].ID},
		{Title: "The Hobbit", ISBN: "978-0547928227", Description: "Fantasy novel about Bilbo Baggins adventure", TotalCopies: 4, AvailableCopies: 4, PublishedYear: 1937, Language: "English", CategoryID: categories[1].ID},
		{Title: "1984", ISBN: "978-0451524935", Description: "Dystopian social science fiction novel", TotalCopies: 6, AvailableCopies: 5, PublishedYear: 1949, Language: "English", CategoryID: categories[0].ID},
		{Title: "Animal Farm", ISBN: "978-0452284244", Description: "Allegorical novella about revolution and power", TotalCopies: 5, AvailableCopies: 5, PublishedYear: 1945, Language: "English", CategoryID: categories[0].ID},
		{Title: "Murder on the Orient Express", ISBN: "978-0062693662", Description: "Detective novel featuring Hercule Poirot", TotalCopies: 3, AvailableCopies: 2, PublishedYear: 1934, Language: "English", CategoryID: categories[2].ID},
		{Title: "Foundation", ISBN: "978-0553293357", Description: "Science fiction novel about the fall and rise of civilization", TotalCopies: 4, AvailableCopies: 4, PublishedYear: 1951, Language: "English", CategoryID: categories[1].ID},
		{Title: "A Brief History of Time", ISBN: "978-0553380163", Description: "Popular science book on cosmology", TotalCopies: 5, AvailableCopies: 3, PublishedYear: 1988, Language: "English", CategoryID: categories[4].ID},
		{Title: "Sapiens", ISBN: "978-0062316097", Description: "A brief history of humankind", TotalCopies: 6, AvailableCopies: 4, PublishedYear: 2011, Language: "English", CategoryID: categories[5].ID},
		{Title: "Outliers", ISBN: "978-0316017930", Description: "The story of success", TotalCopies: 4, AvailableCopies: 4, PublishedYear: 2008, Language: "English", CategoryID: categories[3].ID},
		{Title: "Dune", ISBN: "978-0441172719", Description: "Science fiction novel set in the distant future", TotalCopies: 5, AvailableCopies: 3, PublishedYear: 1965, Language: "English", CategoryID: categories[1].ID},
	}
	if err := db.DB.Create(&books).Error; err != nil {
		return err
	}
	log.Printf("Created %d books", len(books))

	bookAuthors := []int{0, 0, 1, 1, 2, 3, 4, 5, 6, 7}
	for i, authorIdx := range bookAuthors {
		if err := db.ReplaceBookAuthors(&books[i], []uint{authors[authorIdx].ID}); err != nil {
			return err
		}
	}
	log.Println("Associated books with authors")

	now := time.Now()
	day := 24 * time.Hour
	returnedAt := now.Add(-5 * day)
	borrowings := []entities.Borrowing{
		{UserID: users[2].ID, BookID: books[0].ID, BorrowedAt: now, DueDate: now.Add(14 * day), Status: entities.BorrowingStatusActive},
		{UserID: users[3].ID, BookID: books[2].ID, BorrowedAt: now.Add(-7 * day), DueDate: now.Add(7 * day), Status: entities.BorrowingStatusActive},
		{UserID: users[4].ID, BookID: books[4].ID, BorrowedAt: now.Add(-20 * day), DueDate: now.Add(-6 * day), ReturnedAt: &returnedAt, Status: entities.BorrowingStatusReturned},
	}
	if err := db.DB.Create(&borrowings).Error; err != nil {
		return err
	}
	log.Printf("Created %d borrowings", len(borrowings))

	reviews := []entities.Review{
		{UserID: users[2].ID, BookID: books[1].ID, Rating: 5, Comment: "Amazing adventure story! A timeless classic that captivated me from start to finish."},
		{UserID: users[3].ID, BookID: books[2].ID, Rating: 5, Comment: "Terrifyingly relevant even today. A must-read for everyone."},
		{UserID: users[4].ID, BookID: books[4].ID, Rating: 4, Comment: "Brilliant mystery with an unexpected twist. Agatha Christie at her best!"},
		{UserID: users[2].ID, BookID: books[7].ID, Rating: 5, Comment: "Mind-blowing perspective on human history. Changed how I see the world."},
		{UserID: users[3].ID, BookID: books[6].ID, Rating: 4, Comment: "Complex topics explained in an accessible way. Fascinating read."},
	}
	if err := db.DB.Create(&reviews).Error; err != nil {
		return err
	}
	log.Printf("Created %d reviews", len(reviews))

	reservations := []entities.Reservation{
		{UserID: users[2].ID, BookID: books[9].ID, ReservedAt: now, Status: entities.ReservationStatusPending},
		{UserID: users[3].ID, BookID: books[7].ID, ReservedAt: now, Status: entities.ReservationStatusPending},
	}
	if err := db.DB.Create(&reservations).Error; err != nil {
		return err
	}
	log.Printf("Created %d reservations", len(reservations))

	return nil
}
