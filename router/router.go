package router

import (
	"MediaVault/config"
	"MediaVault/internal/handler"
	"MediaVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		authn := api.Group("/auth")
		{
			authn.POST("/register", handler.Register)
			authn.POST("/login", handler.Login)
			authn.POST("/refresh", handler.Refresh)
			authn.POST("/logout", handler.Logout)
		}

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		user := auth.Group("/user")
		{
			user.GET("", handler.GetProfile)
			user.PUT("/settings", handler.UpdateSettings)
		}

		session := auth.Group("/session")
		{
			session.POST("/start", handler.StartSession)
			session.GET("/list", handler.ListSessions)
			session.GET("/:id", handler.GetSession)
			session.PUT("/:id", handler.UpdateSession)
			session.GET("/:id/media", handler.ListSessionMedia)
		}

		media := auth.Group("/media")
		{
			media.POST(
				"/upload/:sessionId",
				utils.UploadRateLimiter(config.AppConfig.UploadRate, config.AppConfig.UploadBurst),
				handler.UploadMedia,
			)
			media.GET("/list", handler.ListMedia)
			media.GET("/search", handler.SearchMedia)
			media.GET("/:id", handler.GetMediaItem)
			media.GET("/:id/file", handler.DownloadMediaFile)
			media.GET("/:id/thumbnail", handler.GetMediaThumbnail)
			media.DELETE("/:id", handler.DeleteMediaItem)
		}

		stats := auth.Group("/stats")
		{
			stats.GET("/me", handler.GetMyStats)
			stats.GET("/system", handler.GetSystemStats)
		}
	}
	return r
}
