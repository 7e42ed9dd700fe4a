package http

import (
	"log"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/library-api/internal/apierror"
)

// exposeStack controls whether unexpected errors include a stack trace in
// the response body. Enabled outside production by NewRouter.
var exposeStack bool

// --- Response Types ---

// Response is the standard success envelope for all API responses.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// ErrorResponse is the standard error envelope. Stack is only populated in
// non-production mode.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

// Pagination is the listing metadata envelope.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(total int64, page, limit int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// --- Response Helpers ---

func respondData(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{
		Success:    true,
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// respondError translates a domain error into the error envelope.
// Non-domain errors are logged and rendered as a generic 500 so internals
// never leak to the client.
func respondError(c *gin.Context, err error, context string) {
	if apiErr, ok := apierror.As(err); ok {
		c.JSON(apiErr.StatusCode, ErrorResponse{
			Success:    false,
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		})
		return
	}

	log.Printf("Internal error (%s): %v", context, err)

	resp := ErrorResponse{
		Success:    false,
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal Server Error",
	}
	if exposeStack {
		resp.Stack = err.Error() + "\n" + string(debug.Stack())
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, apierror.BadRequest(message), "")
}

func respondNotFound(c *gin.Context, resource string) {
	respondError(c, apierror.NotFound(resource+" not found"), "")
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/limit query parameters with defaults page=1,
// limit=10. Non-positive or malformed values fall back to the defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 10
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}
