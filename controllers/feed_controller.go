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

type FeedController struct {
	DB *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

type feedPost struct {
	models.Post
	Username      string  `json:"username"`
	AuthorAvatar  string  `json:"authorAvatar"`
	GroupSlug     *string `json:"groupSlug"`
	CommentsCount int64   `json:"commentsCount"`
}

// GetFollowingFeed godoc
// @Summary Get the viewer's following feed
// @Description Returns posts authored by everyone the viewer follows,
// newest first. The feed is assembled per request from the live follow
// edge set; it is never cached, so follow/unfollow changes show up on
// the next request.
// @Tags feed
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /feed [get]
func (fc *FeedController) GetFollowingFeed(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	base := fc.DB.Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", user.UserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var posts []feedPost
	result := base.
		Select(`
			posts.*,
			users.username,
			users.avatar as author_avatar,
			groups.slug as group_slug,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
		`).
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN groups ON groups.id = posts.group_id").
		Order("posts.created_at DESC").
		Offset(page.Offset).
		Limit(page.Size).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       posts,
		Pagination: paginationMeta(page),
	})
}
