package router

import (
	"net/http"
	"time"

	"govforms/internal/config"
	"govforms/internal/handlers"
	"govforms/internal/models"
	"govforms/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, syncer *services.SheetSyncer) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("govforms_session", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	userHandler := handlers.NewUserHandler(log)
	questionHandler := handlers.NewQuestionHandler(log)
	interviewHandler := handlers.NewInterviewHandler(log)
	formHandler := handlers.NewFormHandler(log)
	sheetHandler := handlers.NewSheetHandler(log, syncer)
	dashboardHandler := handlers.NewDashboardHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")

	api.POST("/auth/login", limiter, authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/session", authHandler.Session)
	api.POST("/seed-admin", limiter, authHandler.SeedAdmin)

	authorized := api.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.POST("/auth/change-password", authHandler.ChangePassword)

		userRoutes := authorized.Group("/users", RoleRequired(models.RoleAdmin))
		{
			userRoutes.GET("", userHandler.List)
			userRoutes.POST("", userHandler.Create)
			userRoutes.PUT("/:userId", userHandler.Update)
			userRoutes.DELETE("/:userId", userHandler.Delete)
		}

		authorized.GET("/questions", questionHandler.List)
		authorized.POST("/questions", RoleRequired(models.RoleAdmin, models.RoleEditor), questionHandler.Create)

		interviewRoutes := authorized.Group("/interviews")
		{
			interviewRoutes.GET("", interviewHandler.List)
			interviewRoutes.POST("", interviewHandler.Create)
			interviewRoutes.GET("/:interviewId", interviewHandler.Get)
			interviewRoutes.PUT("/:interviewId", interviewHandler.Update)
			interviewRoutes.POST("/:interviewId/answers", interviewHandler.RecordAnswer)
			interviewRoutes.POST("/:interviewId/next", interviewHandler.Next)
			interviewRoutes.POST("/:interviewId/prev", interviewHandler.Previous)
		}

		formRoutes := authorized.Group("/forms")
		{
			formRoutes.GET("", formHandler.List)
			formRoutes.POST("", RoleRequired(models.RoleAdmin, models.RoleEditor), formHandler.Create)
			formRoutes.POST("/upload", RoleRequired(models.RoleAdmin, models.RoleEditor), formHandler.Upload)
			formRoutes.POST("/generate", RoleRequired(models.RoleAdmin, models.RoleEditor), formHandler.Generate)
			formRoutes.GET("/:formId", formHandler.Get)
		}

		sheetRoutes := authorized.Group("/sheets", RoleRequired(models.RoleAdmin))
		{
			sheetRoutes.GET("", sheetHandler.List)
			sheetRoutes.POST("", sheetHandler.Create)
			sheetRoutes.PUT("/:connectionId", sheetHandler.Update)
			sheetRoutes.DELETE("/:connectionId", sheetHandler.Delete)
			sheetRoutes.POST("/:connectionId/sync", sheetHandler.Sync)
		}

		authorized.GET("/dashboard/stats", dashboardHandler.Stats)
		authorized.GET("/dashboard/charts", dashboardHandler.Charts)
	}

	return router
}
