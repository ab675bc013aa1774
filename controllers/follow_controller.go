package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/models"
	"github.com/ink-point/api-go/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes for the two follow constraints.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

var (
	ErrSelfFollow       = errors.New("users cannot follow themselves")
	ErrAlreadyFollowing = errors.New("follow edge already exists")
)

type FollowController struct {
	DB *gorm.DB
}

func NewFollowController(db *gorm.DB) *FollowController {
	return &FollowController{DB: db}
}

// createFollow inserts the follow edge. The database constraints are the
// authority: a racing duplicate or self-follow insert fails there and is
// mapped back to the tagged error, so two concurrent writers can never
// both succeed.
func createFollow(db *gorm.DB, followerID, authorID uint) error {
	if followerID == authorID {
		return ErrSelfFollow
	}

	follow := models.Follow{
		UserID:   followerID,
		AuthorID: authorID,
	}

	if err := db.Create(&follow).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrAlreadyFollowing
			case pgCheckViolation:
				return ErrSelfFollow
			}
		}
		return err
	}
	return nil
}

// deleteFollow removes the edge if present and reports how many rows
// went away. Deleting a missing edge is not an error.
func deleteFollow(db *gorm.DB, followerID, authorID uint) (int64, error) {
	result := db.Where("user_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	return result.RowsAffected, result.Error
}

// FollowAuthor godoc
// @Summary Follow an author
// @Description Creates a follow edge and redirects back to the author's profile.
// Duplicate and self-follow attempts are swallowed: the caller always gets
// the same redirect, never an error page.
// @Tags follows
// @Param username path string true "Author username"
// @Success 302
// @Router /users/{username}/follow [post]
func (fc *FollowController) FollowAuthor(c *gin.Context) {
	user := utils.GetUser(c)
	username := c.Param("username")

	var author models.User
	if err := fc.DB.Where("username = ?", username).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := createFollow(fc.DB, user.UserID, author.ID)
	switch {
	case err == nil:
		if err := fc.DB.Create(&models.ActivityLog{
			UserID:   user.UserID,
			Activity: "user_followed",
		}).Error; err != nil {
			log.Printf("follow activity %d -> %d not recorded: %v", user.UserID, author.ID, err)
		}
	case errors.Is(err, ErrSelfFollow), errors.Is(err, ErrAlreadyFollowing):
		// Recovered locally. The action endpoint never surfaces these
		// to the end user; the log keeps the two causes auditable.
		log.Printf("follow %d -> %d rejected: %v", user.UserID, author.ID, err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.Redirect(http.StatusFound, "/users/"+username)
}

// UnfollowAuthor godoc
// @Summary Unfollow an author
// @Description Removes the follow edge if it exists and redirects back to
// the author's profile. Idempotent.
// @Tags follows
// @Param username path string true "Author username"
// @Success 302
// @Router /users/{username}/unfollow [post]
func (fc *FollowController) UnfollowAuthor(c *gin.Context) {
	user := utils.GetUser(c)
	username := c.Param("username")

	var author models.User
	if err := fc.DB.Where("username = ?", username).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	removed, err := deleteFollow(fc.DB, user.UserID, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	// Only an actual removal is an activity; unfollowing a stranger is
	// a no-op.
	if removed > 0 {
		if err := fc.DB.Create(&models.ActivityLog{
			UserID:   user.UserID,
			Activity: "user_unfollowed",
		}).Error; err != nil {
			log.Printf("unfollow activity %d -> %d not recorded: %v", user.UserID, author.ID, err)
		}
	}

	c.Redirect(http.StatusFound, "/users/"+username)
}

// GetFollowers godoc
// @Summary Get an author's followers
// @Tags follows
// @Param username path string true "Author username"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /users/{username}/followers [get]
func (fc *FollowController) GetFollowers(c *gin.Context) {
	fc.listEdges(c, "author_id", "follows.user_id")
}

// GetFollowing godoc
// @Summary Get the authors a user follows
// @Tags follows
// @Param username path string true "Username"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} StandardResponse
// @Router /users/{username}/following [get]
func (fc *FollowController) GetFollowing(c *gin.Context) {
	fc.listEdges(c, "user_id", "follows.author_id")
}

func (fc *FollowController) listEdges(c *gin.Context, whereColumn, joinColumn string) {
	username := c.Param("username")
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var subject models.User
	if err := fc.DB.Where("username = ?", username).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var total int64
	fc.DB.Model(&models.Follow{}).Where(whereColumn+" = ?", subject.ID).Count(&total)

	page := utils.Paginate(total, pageNumber, config.PostsPerPage())

	var users []struct {
		UserID   uint   `json:"userId"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}

	result := fc.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, users.avatar").
		Joins("JOIN users ON users.id = "+joinColumn).
		Where("follows."+whereColumn+" = ?", subject.ID).
		Order("follows.created_at DESC").
		Offset(page.Offset).
		Limit(page.Size).
		Find(&users)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow list"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       users,
		Pagination: paginationMeta(page),
	})
}
