package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/library-api/internal/config"
	"github.com/shelfwise/library-api/internal/entities"
)

// ContextKeyUser is the Gin context key under which the resolved acting
// user is stored.
const ContextKeyUser = "auth_user"

// UserStore is the user lookup the middleware needs to resolve a token's
// subject into an acting identity.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
}

// Middleware authenticates requests and enforces role requirements.
type Middleware struct {
	store UserStore
	cfg   config.JWT
}

func NewMiddleware(store UserStore, cfg config.JWT) *Middleware {
	return &Middleware{store: store, cfg: cfg}
}

// Protect authenticates the request via the Authorization bearer header,
// resolves the token's user and attaches it to the context. Any failure
// aborts with 401.
func (m *Middleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Not authorized to access this route")
			return
		}

		userID, err := ParseToken(token, m.cfg.Secret)
		if err != nil {
			abortUnauthorized(c, "Not authorized to access this route")
			return
		}

		user, err := m.store.GetUserByID(userID)
		if err != nil {
			abortUnauthorized(c, "User no longer exists")
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// Authorize aborts with 403 unless the acting user's role is in the allowed
// set. It assumes Protect already ran.
func (m *Middleware) Authorize(roles ...entities.UserRole) gin.HandlerFunc {
	roleSet := make(map[entities.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, "Not authorized to access this route")
			return
		}

		if !roleSet[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":    false,
				"statusCode": http.StatusForbidden,
				"message":    fmt.Sprintf("Role %s is not authorized to access this route", user.Role),
			})
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the acting user attached by Protect.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user, true
		}
	}
	return nil, false
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":    false,
		"statusCode": http.StatusUnauthorized,
		"message":    message,
	})
}
