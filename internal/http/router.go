package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/library-api/internal/auth"
	"github.com/shelfwise/library-api/internal/config"
	"github.com/shelfwise/library-api/internal/database"
	"github.com/shelfwise/library-api/internal/entities"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Database *database.Database
	Config   *config.Config
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	exposeStack = !cfg.Config.IsProduction()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	db := cfg.Database
	authMiddleware := auth.NewMiddleware(db, cfg.Config.JWT)
	staffOnly := authMiddleware.Authorize(entities.UserRoleAdmin, entities.UserRoleLibrarian)

	authController := NewAuthController(db, cfg.Config.JWT, cfg.Config.Auth.BcryptCost)
	booksController := NewBooksController(db)
	authorsController := NewAuthorsController(db)
	categoriesController := NewCategoriesController(db)
	borrowingsController := NewBorrowingsController(db)
	reservationsController := NewReservationsController(db)
	reviewsController := NewReviewsController(db)
	health := NewHealthController(db, cfg.Version)

	// API banner and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Library Management API",
			"version": cfg.Version,
		})
	})
	router.GET("/health", health.Status)

	limiter := NewRateLimiter(cfg.Config.RateLimit.MaxRequests, cfg.Config.RateLimit.Window)
	api := router.Group(config.APIBasePath, limiter.Handler())

	// Auth
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.GET("/auth/me", authMiddleware.Protect(), authController.Me)

	// Books: reads open, writes restricted to admin/librarian
	api.GET("/books", booksController.GetAllBooks)
	api.GET("/books/:id", booksController.GetBook)
	api.POST("/books", authMiddleware.Protect(), staffOnly, booksController.CreateBook)
	api.PUT("/books/:id", authMiddleware.Protect(), staffOnly, booksController.UpdateBook)
	api.DELETE("/books/:id", authMiddleware.Protect(), staffOnly, booksController.DeleteBook)

	// Authors
	api.GET("/authors", authorsController.GetAllAuthors)
	api.GET("/authors/:id", authorsController.GetAuthor)
	api.POST("/authors", authMiddleware.Protect(), staffOnly, authorsController.CreateAuthor)
	api.PUT("/authors/:id", authMiddleware.Protect(), staffOnly, authorsController.UpdateAuthor)
	api.DELETE("/authors/:id", authMiddleware.Protect(), staffOnly, authorsController.DeleteAuthor)

	// Categories
	api.GET("/categories", categoriesController.GetAllCategories)
	api.GET("/categories/:id", categoriesController.GetCategory)
	api.POST("/categories", authMiddleware.Protect(), staffOnly, categoriesController.CreateCategory)
	api.PUT("/categories/:id", authMiddleware.Protect(), staffOnly, categoriesController.UpdateCategory)
	api.DELETE("/categories/:id", authMiddleware.Protect(), staffOnly, categoriesController.DeleteCategory)

	// Borrowings
	borrowings := api.Group("/borrowings", authMiddleware.Protect())
	borrowings.GET("", borrowingsController.GetAllBorrowings)
	borrowings.GET("/:id", borrowingsController.GetBorrowing)
	borrowings.POST("", borrowingsController.BorrowBook)
	borrowings.PATCH("/:id/return", borrowingsController.ReturnBook)

	// Reservations
	reservations := api.Group("/reservations", authMiddleware.Protect())
	reservations.GET("", reservationsController.GetAllReservations)
	reservations.GET("/:id", reservationsController.GetReservation)
	reservations.POST("", reservationsController.CreateReservation)
	reservations.PATCH("/:id/cancel", reservationsController.CancelReservation)
	reservations.PATCH("/:id/fulfill", staffOnly, reservationsController.FulfillReservation)

	// Reviews
	api.GET("/books/:id/reviews", reviewsController.GetBookReviews)
	api.POST("/books/:id/reviews", authMiddleware.Protect(), reviewsController.CreateReview)
	api.PUT("/reviews/:id", authMiddleware.Protect(), reviewsController.UpdateReview)
	api.DELETE("/reviews/:id", authMiddleware.Protect(), reviewsController.DeleteReview)

	return router
}
