package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

// JSON sends a raw payload, used by read endpoints that return entities
// or lists directly.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Success sends the portal's mutation envelope: {"success": true} merged
// with any extra fields such as allocated identifiers.
func Success(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error maps a typed error onto {"success": false, "message": ...} with
// the status the taxonomy prescribes.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"success": false, "message": appErr.Message})
}
