package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/auth"
)

// ErrorResponse is the standard error response format for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondNotFound sends a 404 Not Found JSON response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// pageData returns the base template data shared by every rendered page:
// the signed-in username (if any) and the CSRF token for forms.
func pageData(c *gin.Context) gin.H {
	return gin.H{
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	}
}

// mergePageData extends the base template data with page-specific values.
func mergePageData(c *gin.Context, extra gin.H) gin.H {
	data := pageData(c)
	for k, v := range extra {
		data[k] = v
	}
	return data
}
