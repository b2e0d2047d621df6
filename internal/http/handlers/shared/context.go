package shared

import (
	"strconv"

	"github.com/moojpayam/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParamUint parses a positive integer path parameter, writing the error
// response itself on failure.
func ParamUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return 0, false
	}
	return uint(value), true
}

// AdminUser reads the authenticated admin username set by the session
// middleware.
func AdminUser(c *gin.Context) string {
	if value, ok := c.Get("admin_user"); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}
