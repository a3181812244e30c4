package handlers

import (
	"net/http"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/services"
	"burrow/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminVotes *services.AdminVoteService
	reconciler *services.ReconcileService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		adminVotes: services.NewAdminVoteService(db.DB),
		reconciler: services.NewReconcileService(db.DB),
	}
}

type retractRequest struct {
	Reason string `json:"reason"`
}

// RetractVote handles POST /api/admin/votes/:id/retract. 404 means the
// vote was already gone; clients that tolerate double-retraction can
// ignore that status.
func (h *AdminHandler) RetractVote(c *gin.Context) {
	admin := middleware.CurrentUser(c)

	var req retractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	voteID := uint(utils.StringToInt(c.Param("id")))
	if err := h.adminVotes.Retract(voteID, admin, req.Reason); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// RecomputeKarma handles POST /api/admin/users/:id/recompute-karma and
// returns the replaced karma breakdown.
func (h *AdminHandler) RecomputeKarma(c *gin.Context) {
	userID := uint(utils.StringToInt(c.Param("id")))
	breakdown, err := h.reconciler.RecomputeUserKarma(userID)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// RecomputeCounters handles POST /api/admin/recount/:type/:id,
// rebuilding one content item's counter triple from its votes.
func (h *AdminHandler) RecomputeCounters(c *gin.Context) {
	target, ok := targetFromParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target type"})
		return
	}
	if err := h.reconciler.RecomputeCounters(target); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
