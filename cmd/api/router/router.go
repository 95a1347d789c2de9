package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/cmd/api/handlers"
	"portfolio-api/cmd/api/middleware"
	_ "portfolio-api/docs"
	"portfolio-api/storage"
)

// New wires the HTTP surface: open public reads, the auth endpoints, and the
// session-gated admin group. The store is the Storage interface, never a
// concrete backend.
func New(store storage.Storage, sessions auth.SessionStore, cookies *auth.CookieManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	r.GET("/health", handlers.HealthHandler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// Public, read-only
		api.GET("/about", handlers.GetAboutHandler(store))
		api.GET("/certifications", handlers.ListCertificationsHandler(store))
		api.GET("/hackathons", handlers.ListHackathonsHandler(store))
		api.GET("/projects", handlers.ListProjectsHandler(store))
		api.GET("/blogs", handlers.ListPublishedBlogPostsHandler(store))
		api.GET("/blogs/:slug", handlers.GetBlogPostBySlugHandler(store))

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", handlers.LoginHandler(store, sessions, cookies))
		authGroup.POST("/logout", handlers.LogoutHandler(sessions, cookies))
		authGroup.GET("/me", middleware.SessionAuth(cookies, sessions), handlers.MeHandler())

		// Admin, session required before any storage call
		admin := api.Group("/admin", middleware.SessionAuth(cookies, sessions))
		{
			admin.PUT("/about", handlers.UpsertAboutHandler(store))

			// The admin dashboard lists through the same handlers as the
			// public site; only the writes differ.
			admin.GET("/certifications", handlers.ListCertificationsHandler(store))
			admin.POST("/certifications", handlers.CreateCertificationHandler(store))
			admin.PUT("/certifications/:id", handlers.UpdateCertificationHandler(store))
			admin.DELETE("/certifications/:id", handlers.DeleteCertificationHandler(store))

			admin.GET("/hackathons", handlers.ListHackathonsHandler(store))
			admin.POST("/hackathons", handlers.CreateHackathonHandler(store))
			admin.PUT("/hackathons/:id", handlers.UpdateHackathonHandler(store))
			admin.DELETE("/hackathons/:id", handlers.DeleteHackathonHandler(store))

			admin.GET("/projects", handlers.ListProjectsHandler(store))
			admin.POST("/projects", handlers.CreateProjectHandler(store))
			admin.PUT("/projects/:id", handlers.UpdateProjectHandler(store))
			admin.DELETE("/projects/:id", handlers.DeleteProjectHandler(store))

			admin.GET("/blogs", handlers.ListAllBlogPostsHandler(store))
			admin.POST("/blogs", handlers.CreateBlogPostHandler(store))
			admin.GET("/blogs/:id", handlers.GetBlogPostHandler(store))
			admin.PUT("/blogs/:id", handlers.UpdateBlogPostHandler(store))
			admin.DELETE("/blogs/:id", handlers.DeleteBlogPostHandler(store))
		}
	}

	return r
}
