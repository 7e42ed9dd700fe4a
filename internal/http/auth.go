package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/library-api/internal/apierror"
	"github.com/shelfwise/library-api/internal/auth"
	"github.com/shelfwise/library-api/internal/config"
	"github.com/shelfwise/library-api/internal/entities"
)

// AuthStore defines the user operations the auth endpoints need.
type AuthStore interface {
	CreateUser(user *entities.User) error
	GetUserByEmail(email string) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
}

type AuthController struct {
	store      AuthStore
	jwtCfg     config.JWT
	bcryptCost int
}

func NewAuthController(store AuthStore, jwtCfg config.JWT, bcryptCost int) *AuthController {
	return &AuthController{store: store, jwtCfg: jwtCfg, bcryptCost: bcryptCost}
}

type registerRequest struct {
	Name     string            `json:"name" binding:"required"`
	Email    string            `json:"email" binding:"required,email"`
	Password string            `json:"password" binding:"required"`
	Role     entities.UserRole `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string              `json:"token"`
	User  entities.PublicUser `json:"user"`
}

// Register creates an account and returns a signed token.
// POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide name, email and password")
		return
	}

	role := req.Role
	if role == "" {
		role = entities.UserRoleMember
	}
	if !entities.ValidRole(role) {
		respondBadRequest(c, "Invalid role")
		return
	}

	existing, err := ac.store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(c, err, "register: check existing user")
		return
	}
	if existing != nil {
		respondError(c, apierror.BadRequest("Email already registered"), "")
		return
	}

	hash, err := auth.HashPassword(req.Password, ac.bcryptCost)
	if err != nil {
		respondError(c, err, "register: hash password")
		return
	}

	user := entities.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}
	if err := ac.store.CreateUser(&user); err != nil {
		respondError(c, err, "register: create user")
		return
	}

	token, err := auth.GenerateToken(user.ID, ac.jwtCfg.Secret, ac.jwtCfg.Expiry)
	if err != nil {
		respondError(c, err, "register: generate token")
		return
	}

	respondData(c, http.StatusCreated, tokenResponse{
		Token: token,
		User:  user.Public(),
	}, "User registered successfully")
}

// Login verifies credentials and returns a signed token. The same error is
// returned for an unknown email and a wrong password.
// POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondBadRequest(c, "Please provide email and password")
		return
	}

	user, err := ac.store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(c, err, "login: look up user")
		return
	}
	if user == nil {
		respondError(c, apierror.Unauthorized("Invalid credentials"), "")
		return
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		respondError(c, apierror.Unauthorized("Invalid credentials"), "")
		return
	}

	token, err := auth.GenerateToken(user.ID, ac.jwtCfg.Secret, ac.jwtCfg.Expiry)
	if err != nil {
		respondError(c, err, "login: generate token")
		return
	}

	respondData(c, http.StatusOK, tokenResponse{
		Token: token,
		User:  user.Public(),
	}, "Login successful")
}

// Me returns the acting user's public fields.
// GET /api/v1/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondError(c, apierror.Unauthorized("Not authorized to access this route"), "")
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user.Public()}, "User fetched successfully")
}
