package handlers

import (
	"net/http"

	"burrow/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// JSONError maps an engine error onto the HTTP status for its taxonomy
// kind and writes the standard error body. Unknown errors are reported as
// 500 without leaking the underlying message.
func JSONError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidVoteValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrSelfVote):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrVoteConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
