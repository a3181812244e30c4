package handlers

import (
	"fmt"
	"net/http"
	"time"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/models"
	"burrow/internal/services"
	"burrow/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile handles GET /api/users/:id: public profile with the karma
// breakdown. The breakdown is cached briefly since profiles are a hot
// read path and karma moves with every vote.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := utils.StringToInt(c.Param("id"))
	cacheKey := fmt.Sprintf("user:profile:%d", userID)

	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var postCount, commentCount int64
	db.DB.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)
	db.DB.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

	profile := gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"bio":      user.Bio,
		"karma": services.KarmaBreakdown{
			Post:    user.PostKarma,
			Comment: user.CommentKarma,
			Awardee: user.AwardeeKarma,
			Awarder: user.AwarderKarma,
			Total:   user.TotalKarma(),
		},
		"post_count":    postCount,
		"comment_count": commentCount,
		"created_at":    user.CreatedAt,
	}

	utils.GetCache().Set(cacheKey, profile, 30*time.Second)
	c.JSON(http.StatusOK, profile)
}

// KarmaLogs handles GET /api/me/karma: the caller's karma audit trail,
// newest first.
func (h *UserHandler) KarmaLogs(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var logs []models.KarmaLog
	db.DB.Where("user_id = ?", currentUser.ID).
		Order("created_at DESC").Limit(100).Find(&logs)

	c.JSON(http.StatusOK, gin.H{
		"post_karma":    currentUser.PostKarma,
		"comment_karma": currentUser.CommentKarma,
		"logs":          logs,
	})
}
