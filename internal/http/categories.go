package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/entities"
)

// CategoryStore defines the catalog operations for categories.
type CategoryStore interface {
	GetAllCategories() ([]entities.Category, error)
	GetCategoryByID(id uint) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	UpdateCategory(category *entities.Category) error
	DeleteCategory(id uint) error
}

type CategoriesController struct {
	store CategoryStore
}

func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetAllCategories lists all categories ordered by name.
// GET /api/v1/categories
func (cc *CategoriesController) GetAllCategories(c *gin.Context) {
	categories, err := cc.store.GetAllCategories()
	if err != nil {
		respondError(c, err, "get all categories")
		return
	}

	respondData(c, http.StatusOK, gin.H{"categories": categories}, "Categories fetched successfully")
}

// GetCategory returns a single category.
// GET /api/v1/categories/:id
func (cc *CategoriesController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondError(c, err, "get category")
		return
	}

	respondData(c, http.StatusOK, gin.H{"category": category}, "Category fetched successfully")
}

// CreateCategory creates a category.
// POST /api/v1/categories
func (cc *CategoriesController) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide name")
		return
	}

	category := entities.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := cc.store.CreateCategory(&category); err != nil {
		respondError(c, err, "create category")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"category": category}, "Category created successfully")
}

// UpdateCategory partially updates a category.
// PUT /api/v1/categories/:id
func (cc *CategoriesController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondError(c, err, "update category: load")
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := cc.store.UpdateCategory(category); err != nil {
		respondError(c, err, "update category")
		return
	}

	respondData(c, http.StatusOK, gin.H{"category": category}, "Category updated successfully")
}

// DeleteCategory removes a category.
// DELETE /api/v1/categories/:id
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := cc.store.GetCategoryByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondError(c, err, "delete category: load")
		return
	}

	if err := cc.store.DeleteCategory(id); err != nil {
		respondError(c, err, "delete category")
		return
	}

	respondData(c, http.StatusOK, nil, "Category deleted successfully")
}
