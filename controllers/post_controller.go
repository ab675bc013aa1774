package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/cache"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/models"
	"github.com/ink-point/api-go/utils"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostController struct {
	DB        *gorm.DB
	PageCache *cache.PageCache
}

type CreatePostRequest struct {
	Text     string   `json:"text" binding:"required"`
	GroupID  *uint    `json:"groupId"`
	ImageURL string   `json:"imageUrl"`
	Hashtags []string `json:"hashtags"`
}

type UpdatePostRequest struct {
	Text     string   `json:"text"`
	GroupID  *uint    `json:"groupId"` // 0 clears the group
	ImageURL *string  `json:"imageUrl"`
	Hashtags []string `json:"hashtags"`
}

func NewPostController(db *gorm.DB, pageCache *cache.PageCache) *PostController {
	return &PostController{DB: db, PageCache: pageCache}
}

type postRow struct {
	models.Post
	Username      string  `json:"username"`
	AuthorAvatar  string  `json:"authorAvatar"`
	GroupSlug     *string `json:"groupSlug"`
	CommentsCount int64   `json:"commentsCount"`
}

func (pc *PostController) listPosts(scope *gorm.DB, pageNumber int) ([]postRow, utils.Page, error) {
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, utils.Page{}, err
	}

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var posts []postRow
	result := scope.
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

	return posts, page, result.Error
}

// GetIndex godoc
// @Summary Get the global post listing
// @Description Returns all posts, newest first. The rendered body is
// cached per URL for a short TTL; a post created inside the window is
// not visible until the cache expires or is cleared.
// @Tags posts
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /posts [get]
func (pc *PostController) GetIndex(c *gin.Context) {
	uri := c.Request.URL.RequestURI()

	if body, ok, err := pc.PageCache.Get(c.Request.Context(), uri); err == nil && ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	posts, page, err := pc.listPosts(pc.DB.Model(&models.Post{}), pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	body, err := json.Marshal(StandardResponse{
		Success:    true,
		Data:       posts,
		Pagination: paginationMeta(page),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rendering posts"})
		return
	}

	// Best effort: a cache write failure must not fail the request.
	pc.PageCache.Set(c.Request.Context(), uri, body)

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetUserPosts godoc
// @Summary Get an author's profile posts
// @Description Returns the author's posts newest first, with follower
// counts and whether the authenticated viewer follows the author.
// @Tags posts
// @Produce json
// @Param username path string true "Author username"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /users/{username}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	username := c.Param("username")
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var author models.User
	if err := pc.DB.Where("username = ?", username).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	posts, page, err := pc.listPosts(
		pc.DB.Model(&models.Post{}).Where("posts.author_id = ?", author.ID),
		pageNumber,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	var followersCount, followingCount int64
	pc.DB.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&followersCount)
	pc.DB.Model(&models.Follow{}).Where("user_id = ?", author.ID).Count(&followingCount)

	following := false
	if viewer := utils.GetUser(c); viewer != nil {
		var count int64
		pc.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewer.UserID, author.ID).
			Count(&count)
		following = count > 0
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    posts,
		Meta: gin.H{
			"author":         author.Username,
			"bio":            author.Bio,
			"avatar":         author.Avatar,
			"followersCount": followersCount,
			"followingCount": followingCount,
			"following":      following,
		},
		Pagination: paginationMeta(page),
	})
}

// GetPostDetail godoc
// @Summary Get a single post with its comments
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} StandardResponse
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID := c.Param("id")

	var post postRow
	result := pc.DB.Model(&models.Post{}).
		Select(`
			posts.*,
			users.username,
			users.avatar as author_avatar,
			groups.slug as group_slug,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
		`).
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN groups ON groups.id = posts.group_id").
		Where("posts.id = ?", postID).
		First(&post)

	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []struct {
		models.Comment
		Username string `json:"username"`
	}
	pc.DB.Model(&models.Comment{}).
		Select("comments.*, users.username").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Find(&comments)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"post":     post,
			"comments": comments,
		},
	})
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post authored by the current user. Hashtags are
// extracted from the text when not given explicitly.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} StandardResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.GroupID != nil {
		var group models.Group
		if err := pc.DB.First(&group, *req.GroupID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
	}

	hashtags := req.Hashtags
	if len(hashtags) == 0 {
		hashtags = extractHashtags(req.Text)
	}

	tx := pc.DB.Begin()

	post := models.Post{
		Text:      req.Text,
		AuthorID:  user.UserID,
		GroupID:   req.GroupID,
		ImageURL:  req.ImageURL,
		Hashtags:  pq.StringArray(hashtags),
		CreatedAt: time.Now(),
	}

	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	activity := models.ActivityLog{
		UserID:   user.UserID,
		PostID:   post.ID,
		Activity: "post_created",
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post created",
	})
}

// UpdatePost godoc
// @Summary Update an existing post
// @Description Updates text, group, image or hashtags. Authorship never
// changes after creation.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} StandardResponse
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own posts"})
		return
	}

	updates := make(map[string]interface{})

	if req.Text != "" {
		updates["text"] = req.Text
		if len(req.Hashtags) == 0 {
			updates["hashtags"] = pq.StringArray(extractHashtags(req.Text))
		}
	}
	if len(req.Hashtags) > 0 {
		updates["hashtags"] = pq.StringArray(req.Hashtags)
	}
	if req.GroupID != nil {
		if *req.GroupID == 0 {
			updates["group_id"] = nil
		} else {
			var group models.Group
			if err := pc.DB.First(&group, *req.GroupID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
				return
			}
			updates["group_id"] = *req.GroupID
		}
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	updates["updated_at"] = time.Now()

	tx := pc.DB.Begin()

	if err := tx.Model(&post).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	activity := models.ActivityLog{
		UserID:   user.UserID,
		PostID:   post.ID,
		Activity: "post_updated",
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post updated",
	})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes a post and its comments in one transaction.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} StandardResponse
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comments"})
		return
	}

	activity := models.ActivityLog{
		UserID:   user.UserID,
		PostID:   post.ID,
		Activity: "post_deleted",
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Post successfully deleted",
	})
}

// ClearIndexCache godoc
// @Summary Clear the cached index pages
// @Description Admin-only escape hatch: drops every cached rendering of
// the given route (all page variants) before the TTL runs out.
// @Tags admin
// @Produce json
// @Param uri query string false "Cached route (default: /api/posts)"
// @Success 200 {object} StandardResponse
// @Router /admin/cache/clear [post]
func (pc *PostController) ClearIndexCache(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	uri := c.DefaultQuery("uri", "/api/posts")
	if err := pc.PageCache.InvalidateRoute(c.Request.Context(), uri); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Cache cleared",
	})
}

// Helper function to extract hashtags from post text
func extractHashtags(text string) []string {
	words := strings.Fields(text)
	var hashtags []string
	for _, word := range words {
		if strings.HasPrefix(word, "#") {
			hashtag := strings.TrimPrefix(word, "#")
			if hashtag != "" {
				hashtags = append(hashtags, hashtag)
			}
		}
	}
	return hashtags
}
