package handlers

import (
	"fmt"
	"net/http"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/models"
	"burrow/internal/services"
	"burrow/internal/utils"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct{}

func NewStoryHandler() *StoryHandler {
	return &StoryHandler{}
}

type createPostRequest struct {
	BoardID uint   `json:"board_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type createCommentRequest struct {
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`
}

// Create handles POST /api/posts. Thin I/O: no counter or karma logic
// lives here, a fresh post simply starts at zero everywhere.
func (h *StoryHandler) Create(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.BoardID == 0 {
		req.BoardID = 1
	}

	post := models.Post{
		Pid:     utils.RandomID(8),
		UserID:  currentUser.ID,
		BoardID: req.BoardID,
		Title:   req.Title,
		URL:     req.URL,
		Content: req.Content,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Detail handles GET /api/posts/:pid, returning the post with rendered
// content, its comments and, for a logged-in caller, their stored vote on
// each item.
func (h *StoryHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Preload("User").Preload("Board").Where("pid = ?", pid).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var comments []models.Comment
	db.DB.Preload("User").Where("post_id = ?", post.ID).Order("created_at ASC").Find(&comments)
	post.CommentCount = len(comments)

	db.DB.Model(&post).UpdateColumn("views", post.Views+1)

	response := gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
		"comments":     comments,
	}

	if currentUser := middleware.CurrentUser(c); currentUser != nil {
		var votes []models.Vote
		db.DB.Where("user_id = ?", currentUser.ID).
			Where("(target_kind = ? AND target_id = ?) OR (target_kind = ? AND target_id IN (?))",
				models.TargetPost, post.ID,
				models.TargetComment, db.DB.Model(&models.Comment{}).Select("id").Where("post_id = ?", post.ID)).
			Find(&votes)
		myVotes := make(map[string]int, len(votes))
		for _, v := range votes {
			myVotes[fmt.Sprintf("%s:%d", v.TargetKind, v.TargetID)] = v.Value
		}
		response["my_votes"] = myVotes
	}

	c.JSON(http.StatusOK, response)
}

// CreateComment handles POST /api/posts/:pid/comments.
func (h *StoryHandler) CreateComment(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment := models.Comment{
		Cid:      utils.RandomID(8),
		PostID:   post.ID,
		UserID:   currentUser.ID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// Tell the post author (or the parent commenter) asynchronously.
	go func() {
		receiverID := post.UserID
		kind := models.NotificationTypeCommentPost
		if req.ParentID != nil {
			var parent models.Comment
			if err := db.DB.First(&parent, *req.ParentID).Error; err == nil {
				receiverID = parent.UserID
				kind = models.NotificationTypeReplyComment
			}
		}
		body := fmt.Sprintf("New reply on \"%s\"", post.Title)
		services.CreateCommentNotification(db.DB, receiverID, currentUser.ID, kind, body)
	}()

	c.JSON(http.StatusCreated, comment)
}

// ListBoards handles GET /api/boards.
func (h *StoryHandler) ListBoards(c *gin.Context) {
	var boards []models.Board
	db.DB.Order("id ASC").Find(&boards)
	c.JSON(http.StatusOK, boards)
}

// ListByBoard handles GET /api/boards/:name/posts, newest first.
func (h *StoryHandler) ListByBoard(c *gin.Context) {
	var board models.Board
	if err := db.DB.Where("name = ?", c.Param("name")).First(&board).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var posts []models.Post
	db.DB.Preload("User").Where("board_id = ?", board.ID).
		Order("created_at DESC").Limit(50).Find(&posts)
	c.JSON(http.StatusOK, posts)
}
