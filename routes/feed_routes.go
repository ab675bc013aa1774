package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/controllers"
)

func SetupFeedRoutes(browser *gin.RouterGroup, feedController *controllers.FeedController) {
	feed := browser.Group("/feed")
	{
		feed.GET("", feedController.GetFollowingFeed)
	}
}
