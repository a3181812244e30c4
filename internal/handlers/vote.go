package handlers

import (
	"net/http"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/models"
	"burrow/internal/services"
	"burrow/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{
		votes: services.NewVoteService(db.DB),
	}
}

type castRequest struct {
	Value int `json:"value"`
}

// Cast handles POST /api/vote/:type/:id with a body of {"value": -1|0|1},
// where 0 retracts. Responds with the committed counters.
func (h *VoteHandler) Cast(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	target, ok := targetFromParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target type"})
		return
	}

	var req castRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.votes.Cast(currentUser.ID, target, req.Value)
	if err != nil {
		JSONError(c, err)
		return
	}

	// Queue a background recount of this target so any counter drift is
	// repaired off the hot path.
	services.GetRecountWorker().Schedule(target)

	c.JSON(http.StatusOK, result)
}

// targetFromParams builds the tagged target from the :type/:id route
// parameters ("post" or "comment").
func targetFromParams(c *gin.Context) (models.Target, bool) {
	id := uint(utils.StringToInt(c.Param("id")))
	switch c.Param("type") {
	case "post":
		return models.PostTarget(id), true
	case "comment":
		return models.CommentTarget(id), true
	}
	return models.Target{}, false
}
