package http

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"github.com/mikiasgoitom/Convene/internal/handler/http/middleware"
	"github.com/mikiasgoitom/Convene/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// RouterOptions carries the transport settings that are not usecase configuration.
type RouterOptions struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	EnableGoogleLogin  bool
	// MetricsHandler serves /metrics; nil disables the endpoint.
	MetricsHandler http.Handler
	// RequestRecorder observes every request; nil disables request metrics.
	RequestRecorder middleware.RequestRecorder
}

type Router struct {
	userHandler         *UserHandler
	conversationHandler *ConversationHandler
	authHandler         *AuthHandler
	jwtService          usecase.JWTService
	opts                RouterOptions
}

func NewRouter(userUsecase usecasecontract.IUserUseCase, pictureUsecase usecasecontract.IProfilePictureUseCase, conversationUsecase usecasecontract.IConversationUseCase, jwtService usecase.JWTService, config usecasecontract.IConfigProvider, randomGen contract.IRandomGenerator, opts RouterOptions) *Router {
	return &Router{
		userHandler:         NewUserHandler(userUsecase, pictureUsecase, config.GetDuplicateEmailConflict()),
		conversationHandler: NewConversationHandler(conversationUsecase),
		authHandler:         NewAuthHandler(userUsecase, config, randomGen),
		jwtService:          jwtService,
		opts:                opts,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	// cors.New panics without origins, so CORS is off when none are configured.
	if len(r.opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     r.opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if r.opts.RequestRecorder != nil {
		router.Use(middleware.Metrics(r.opts.RequestRecorder))
	}
	// rate limiter configuration
	if r.opts.RateLimitPerSecond > 0 {
		lmt := tollbooth.NewLimiter(r.opts.RateLimitPerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
		lmt.SetMessage("Too many requests, please try again later.")
		router.Use(middleware.RateLimiter(lmt))
	}

	if r.opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(r.opts.MetricsHandler))
	}
	// API v1 routes
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/user", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.GET("/userprofile/:id", r.userHandler.GetUser)
		auth.PUT("/userprofile/:id", r.userHandler.UpdateUser)
		auth.PUT("/update-pic/:id", r.userHandler.UpdateProfilePicture)
		auth.GET("/pendinguser", r.userHandler.ListPendingUsers)
		auth.PUT("/:id/approve", r.userHandler.ApproveUser)
		auth.GET("/test", middleware.AuthMiddleWare(r.jwtService), middleware.RequireRoles(entity.UserRoleAdmin), r.userHandler.AdminCheck)

		if r.opts.EnableGoogleLogin {
			auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
			auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
		}
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.jwtService))
	{
		protected.POST("/messages", r.conversationHandler.PostMessage)
		protected.GET("/conversations", r.conversationHandler.ListConversations)
		protected.GET("/conversations/:id/messages", r.conversationHandler.GetThread)
	}
}
