package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/metrics"
	"github.com/cowrite/cowrite/internal/server/api"
	"github.com/cowrite/cowrite/internal/server/biz"
	"github.com/cowrite/cowrite/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Health        *api.HealthHandlers
	Auth          *api.AuthHandlers
	Comment       *api.CommentHandlers
	KnowledgeBase *api.KnowledgeBaseHandlers
	Organization  *api.OrganizationHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
	HTTPMetrics *metrics.HTTPMetrics
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))
	server.Use(middleware.WithMetrics(services.HTTPMetrics))

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	timeout := middleware.WithTimeout(server.Config.RequestTimeout)

	server.GET("/health", timeout, handlers.Health.Health)

	authGroup := server.Group("/api/auth", timeout)
	{
		// Sign up and sign in - DO NOT AUTH
		authGroup.POST("/signup", handlers.Auth.SignUp)
		authGroup.POST("/signin", handlers.Auth.SignIn)
		authGroup.GET("/me", middleware.WithJWTAuth(services.AuthService), handlers.Auth.Me)
	}

	apiGroup := server.Group("/api", timeout, middleware.WithJWTAuth(services.AuthService))

	{
		commentGroup := apiGroup.Group("/document-comment")
		commentGroup.GET("/document/:id", handlers.Comment.ListByDocument)
		commentGroup.POST("/", handlers.Comment.Create)
		commentGroup.POST("/page", handlers.Comment.Page)
		commentGroup.GET("/:id", handlers.Comment.Get)
		commentGroup.PUT("/:id", handlers.Comment.Update)
		commentGroup.PUT("/:id/status", handlers.Comment.ChangeStatus)
		commentGroup.DELETE("/:id", handlers.Comment.Delete)
	}

	{
		kbGroup := apiGroup.Group("/knowledge-base")
		kbGroup.GET("/getOrganizationKnowledgeBases/:id", handlers.KnowledgeBase.ListOrganization)
		kbGroup.POST("/createPersonal", handlers.KnowledgeBase.CreatePersonal)
		kbGroup.POST("/createOrganization", handlers.KnowledgeBase.CreateOrganization)
		kbGroup.GET("/getPersonal", handlers.KnowledgeBase.ListPersonal)
		kbGroup.POST("/update", handlers.KnowledgeBase.Update)
		kbGroup.GET("/:id", handlers.KnowledgeBase.Get)
		kbGroup.DELETE("/:id", handlers.KnowledgeBase.Delete)
	}

	{
		orgGroup := apiGroup.Group("/organization")
		orgGroup.GET("/quickly", handlers.Organization.ListQuick)
		orgGroup.GET("/organized", handlers.Organization.ListOrganized)
		orgGroup.POST("/switch", handlers.Organization.Switch)
		orgGroup.POST("/create", handlers.Organization.Create)
		orgGroup.GET("/:id/members", handlers.Organization.ListMembers)
		orgGroup.POST("/:id/member", handlers.Organization.AddMember)
		orgGroup.POST("/:id/member/:userId/role", handlers.Organization.SetMemberRole)
		orgGroup.DELETE("/:id/member/:userId", handlers.Organization.RemoveMember)
		orgGroup.GET("/:id", handlers.Organization.Get)
		orgGroup.PUT("/:id", handlers.Organization.Update)
		orgGroup.DELETE("/:id", handlers.Organization.Delete)
	}
}
