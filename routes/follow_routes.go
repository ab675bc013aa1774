package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/controllers"
)

func SetupFollowRoutes(browser *gin.RouterGroup, followController *controllers.FollowController) {
	users := browser.Group("/users")
	{
		users.POST("/:username/follow", followController.FollowAuthor)
		users.POST("/:username/unfollow", followController.UnfollowAuthor)
	}
}
