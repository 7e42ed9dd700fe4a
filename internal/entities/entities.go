package entities

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleLibrarian UserRole = "librarian"
	UserRoleMember    UserRole = "member"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleLibrarian, UserRoleMember:
		return true
	}
	return false
}

type BorrowingStatus string

const (
	BorrowingStatusActive   BorrowingStatus = "active"
	BorrowingStatusReturned BorrowingStatus = "returned"
	// BorrowingStatusOverdue exists in the schema but no code path sets it.
	BorrowingStatusOverdue BorrowingStatus = "overdue"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Role      UserRole  `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"index;size:100" json:"last_name"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	Country   string    `gorm:"size:100" json:"country,omitempty"`
	Books     []Book    `gorm:"many2many:book_authors;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	ISBN            string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	TotalCopies     int       `gorm:"not null;default:1" json:"total_copies"`
	AvailableCopies int       `gorm:"not null;default:1" json:"available_copies"`
	PublishedYear   int       `json:"published_year,omitempty"`
	Language        string    `gorm:"size:50;default:'English'" json:"language"`
	CategoryID      uint      `gorm:"index" json:"category_id"`
	Category        Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Authors         []Author  `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookAuthor is the explicit join table between books and authors.
// The composite primary key enforces uniqueness of each (book, author) pair.
type BookAuthor struct {
	BookID   uint `gorm:"primaryKey" json:"book_id"`
	AuthorID uint `gorm:"primaryKey" json:"author_id"`
}

type Borrowing struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index" json:"user_id"`
	BookID     uint            `gorm:"index" json:"book_id"`
	User       User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book       Book            `gorm:"foreignKey:BookID" json:"book,omitempty"`
	BorrowedAt time.Time       `json:"borrowed_at"`
	DueDate    time.Time       `gorm:"not null" json:"due_date"`
	ReturnedAt *time.Time      `json:"returned_at,omitempty"`
	Status     BorrowingStatus `gorm:"index;size:20;default:'active'" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type Reservation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"index" json:"user_id"`
	BookID     uint              `gorm:"index" json:"book_id"`
	User       User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book       Book              `gorm:"foreignKey:BookID" json:"book,omitempty"`
	ReservedAt time.Time         `json:"reserved_at"`
	Status     ReservationStatus `gorm:"index;size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (Category) TableName() string {
	return "categories"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (Borrowing) TableName() string {
	return "borrowings"
}

func (Reservation) TableName() string {
	return "reservations"
}

func (Review) TableName() string {
	return "reviews"
}

// PublicUser is the representation of a user that is safe to return to
// clients: everything except the password hash.
type PublicUser struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
