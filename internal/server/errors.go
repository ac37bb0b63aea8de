package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxaris/luxaris/internal/domain"
	debuglog "github.com/luxaris/luxaris/internal/log"
)

// respondError maps typed failures to their HTTP status; anything else is a
// generic 500 so internal details never leak to clients.
func respondError(c *gin.Context, err error) {
	if f, ok := domain.AsFailure(err); ok {
		c.JSON(f.Status(), gin.H{"error": gin.H{"code": f.Code, "message": f.Message}})
		return
	}
	debuglog.Basicf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "INTERNAL_ERROR", "message": "internal error"}})
}
