package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/controllers"
)

func SetupReadRoutes(open *gin.RouterGroup, postController *controllers.PostController, groupController *controllers.GroupController, commentController *controllers.CommentController, followController *controllers.FollowController) {
	posts := open.Group("/posts")
	{
		posts.GET("", postController.GetIndex)
		posts.GET("/:id", postController.GetPostDetail)
		posts.GET("/:id/comments", commentController.GetPostComments)
	}

	groups := open.Group("/groups")
	{
		groups.GET("", groupController.GetGroups)
		groups.GET("/:slug/posts", groupController.GetGroupPosts)
	}

	users := open.Group("/users")
	{
		users.GET("/:username/posts", postController.GetUserPosts)
		users.GET("/:username/followers", followController.GetFollowers)
		users.GET("/:username/following", followController.GetFollowing)
	}
}
