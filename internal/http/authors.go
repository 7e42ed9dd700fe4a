package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/entities"
)

// AuthorStore defines the catalog operations for authors.
type AuthorStore interface {
	GetAllAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	CreateAuthor(author *entities.Author) error
	UpdateAuthor(author *entities.Author) error
	DeleteAuthor(id uint) error
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

type createAuthorRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Bio       string `json:"bio"`
	Country   string `json:"country"`
}

type updateAuthorRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Country   *string `json:"country"`
}

// GetAllAuthors lists all authors ordered by last name.
// GET /api/v1/authors
func (ac *AuthorsController) GetAllAuthors(c *gin.Context) {
	authors, err := ac.store.GetAllAuthors()
	if err != nil {
		respondError(c, err, "get all authors")
		return
	}

	respondData(c, http.StatusOK, gin.H{"authors": authors}, "Authors fetched successfully")
}

// GetAuthor returns a single author.
// GET /api/v1/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondError(c, err, "get author")
		return
	}

	respondData(c, http.StatusOK, gin.H{"author": author}, "Author fetched successfully")
}

// CreateAuthor creates an author.
// POST /api/v1/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide first_name and last_name")
		return
	}

	author := entities.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Country:   req.Country,
	}
	if err := ac.store.CreateAuthor(&author); err != nil {
		respondError(c, err, "create author")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"author": author}, "Author created successfully")
}

// UpdateAuthor partially updates an author; only supplied fields overwrite.
// PUT /api/v1/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondError(c, err, "update author: load")
		return
	}

	var req updateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if req.FirstName != nil {
		author.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		author.LastName = *req.LastName
	}
	if req.Bio != nil {
		author.Bio = *req.Bio
	}
	if req.Country != nil {
		author.Country = *req.Country
	}

	if err := ac.store.UpdateAuthor(author); err != nil {
		respondError(c, err, "update author")
		return
	}

	respondData(c, http.StatusOK, gin.H{"author": author}, "Author updated successfully")
}

// DeleteAuthor removes an author.
// DELETE /api/v1/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetAuthorByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author")
			return
		}
		respondError(c, err, "delete author: load")
		return
	}

	if err := ac.store.DeleteAuthor(id); err != nil {
		respondError(c, err, "delete author")
		return
	}

	respondData(c, http.StatusOK, nil, "Author deleted successfully")
}
