package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/models"
	"github.com/ink-point/api-go/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type GroupController struct {
	DB *gorm.DB
}

type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

// CreateGroup godoc
// @Summary Create a group
// @Description Admin-only. Slug must be unique.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body CreateGroupRequest true "Group creation request"
// @Success 201 {object} StandardResponse
// @Router /groups [post]
func (gc *GroupController) CreateGroup(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := gc.DB.Create(&group).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    group,
		Message: "Group created",
	})
}

// GetGroups godoc
// @Summary List groups
// @Tags groups
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /groups [get]
func (gc *GroupController) GetGroups(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var total int64
	gc.DB.Model(&models.Group{}).Count(&total)

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var groups []models.Group
	result := gc.DB.Model(&models.Group{}).
		Order("groups.title ASC").
		Offset(page.Offset).
		Limit(page.Size).
		Find(&groups)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching groups"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       groups,
		Pagination: paginationMeta(page),
	})
}

// GetGroupPosts godoc
// @Summary Get a group's posts
// @Description Returns the group's posts, newest first.
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /groups/{slug}/posts [get]
func (gc *GroupController) GetGroupPosts(c *gin.Context) {
	slug := c.Param("slug")
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var group models.Group
	if err := gc.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var total int64
	gc.DB.Model(&models.Post{}).Where("group_id = ?", group.ID).Count(&total)

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var posts []struct {
		models.Post
		Username      string `json:"username"`
		CommentsCount int64  `json:"commentsCount"`
	}

	result := gc.DB.Model(&models.Post{}).
		Select(`
			posts.*,
			users.username,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
		`).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.group_id = ?", group.ID).
		Order("posts.created_at DESC").
		Offset(page.Offset).
		Limit(page.Size).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    posts,
		Meta: gin.H{
			"title":       group.Title,
			"slug":        group.Slug,
			"description": group.Description,
		},
		Pagination: paginationMeta(page),
	})
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Admin-only. Posts filed under the group keep existing;
// their group reference is cleared in the same transaction.
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} StandardResponse
// @Router /groups/{slug} [delete]
func (gc *GroupController) DeleteGroup(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	slug := c.Param("slug")

	var group models.Group
	if err := gc.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	tx := gc.DB.Begin()

	if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).
		Update("group_id", nil).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach posts"})
		return
	}

	if err := tx.Delete(&group).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Group deleted",
	})
}
