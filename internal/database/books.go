package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/entities"
)

// BookFilter describes the optional filters, sorting and pagination applied
// to a book listing.
type BookFilter struct {
	CategoryID    uint
	AvailableOnly bool
	Search        string // case-insensitive substring over title/description
	SortBy        string
	Order         string // ASC or DESC
	Page          int
	Limit         int
}

// sortColumns whitelists sortable fields. Client-supplied sort keys are
// mapped here instead of being interpolated into SQL.
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"created_at":      "created_at",
	"title":           "title",
	"publishedYear":   "published_year",
	"published_year":  "published_year",
	"availableCopies": "available_copies",
	"totalCopies":     "total_copies",
}

func (f BookFilter) orderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, "ASC") {
		direction = "ASC"
	}
	return column + " " + direction
}

func (d *Database) GetAllBooks(filter BookFilter) ([]entities.Book, int64, error) {
	query := d.DB.Model(&entities.Book{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("available_copies > 0")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	err := query.
		Preload("Category").
		Preload("Authors").
		Order(filter.orderClause()).
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&books).Error
	return books, total, err
}

func (d *Database) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Preload("Category").Preload("Authors").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindBookByISBN returns (nil, nil) when no book carries the ISBN.
func (d *Database) FindBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (d *Database) CreateBook(book *entities.Book) error {
	return d.DB.Omit("Authors", "Category").Create(book).Error
}

func (d *Database) UpdateBook(book *entities.Book) error {
	return d.DB.Omit("Authors", "Category").Save(book).Error
}

// ReplaceBookAuthors swaps the book's author set wholesale for the given
// author IDs. Unknown IDs fail the association append.
func (d *Database) ReplaceBookAuthors(book *entities.Book, authorIDs []uint) error {
	var authors []entities.Author
	if len(authorIDs) > 0 {
		if err := d.DB.Find(&authors, authorIDs).Error; err != nil {
			return err
		}
	}
	return d.DB.Model(book).Association("Authors").Replace(authors)
}

func (d *Database) DeleteBook(id uint) error {
	return d.DB.Delete(&entities.Book{}, id).Error
}
