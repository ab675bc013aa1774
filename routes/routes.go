package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/cache"
	"github.com/ink-point/api-go/controllers"
	"github.com/ink-point/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, pageCache *cache.PageCache) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, pageCache)
	groupController := controllers.NewGroupController(db)
	commentController := controllers.NewCommentController(db)
	followController := controllers.NewFollowController(db)
	feedController := controllers.NewFeedController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Read routes: anonymous access allowed, claims attached when present
	open := r.Group("/api")
	open.Use(middleware.OptionalAuthMiddleware())
	{
		SetupReadRoutes(open, postController, groupController, commentController, followController)
	}

	// Browser-flow routes: anonymous requests get a login redirect
	// with a return path instead of a 401.
	browser := r.Group("/api")
	browser.Use(middleware.LoginRedirectMiddleware())
	{
		SetupFeedRoutes(browser, feedController)
		SetupFollowRoutes(browser, followController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupPostRoutes(protected, postController, commentController)
		SetupGroupRoutes(protected, groupController)
		SetupUploadRoutes(protected, uploadController)

		protected.POST("/admin/cache/clear", postController.ClearIndexCache)
	}
}
