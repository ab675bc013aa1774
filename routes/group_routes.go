package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/controllers"
)

func SetupGroupRoutes(protected *gin.RouterGroup, groupController *controllers.GroupController) {
	groups := protected.Group("/groups")
	{
		groups.POST("", groupController.CreateGroup)
		groups.DELETE("/:slug", groupController.DeleteGroup)
	}
}
