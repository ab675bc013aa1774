package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/comments", commentController.AddComment)
	}

	comments := protected.Group("/comments")
	{
		comments.DELETE("/:id", commentController.DeleteComment)
	}
}
