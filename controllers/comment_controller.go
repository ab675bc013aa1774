package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/models"
	"github.com/ink-point/api-go/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// AddComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body AddCommentRequest true "Comment request"
// @Success 201 {object} StandardResponse
// @Router /posts/{id}/comments [post]
func (cc *CommentController) AddComment(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := cc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		Text:     req.Text,
		PostID:   post.ID,
		AuthorID: user.UserID,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	cc.DB.Create(&models.ActivityLog{
		UserID:   user.UserID,
		PostID:   post.ID,
		Activity: "comment_added",
	})

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    comment,
		Message: "Comment added",
	})
}

// GetPostComments godoc
// @Summary Get a post's comments
// @Description Returns the post's comments, newest first.
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /posts/{id}/comments [get]
func (cc *CommentController) GetPostComments(c *gin.Context) {
	postID := c.Param("id")
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var post models.Post
	if err := cc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var total int64
	cc.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&total)

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var comments []struct {
		models.Comment
		Username string `json:"username"`
	}

	result := cc.DB.Model(&models.Comment{}).
		Select("comments.*, users.username").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", post.ID).
		Order("comments.created_at DESC").
		Offset(page.Offset).
		Limit(page.Size).
		Find(&comments)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       comments,
		Pagination: paginationMeta(page),
	})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} StandardResponse
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID := c.Param("id")

	var comment models.Comment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Comment deleted",
	})
}
