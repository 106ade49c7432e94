package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	RateLimiter    *IPRateLimiter
}

// NewRouter wires every route of the service onto a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	if opts.Logger != nil {
		router.Use(ginzap.Ginzap(opts.Logger, time.RFC3339, true))
		router.Use(ginzap.RecoveryWithZap(opts.Logger, true))
	} else {
		router.Use(gin.Recovery())
	}
	router.Use(SecurityHeaders())

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Trello to Google Chat notifier is running")
	})

	apiGroup := router.Group("/api", RateLimit(opts.RateLimiter))
	{
		apiGroup.GET("/health", h.HealthCheckHandler)

		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		authed := apiGroup.Group("", Authenticate(h.Tokens, h.Users))
		authed.GET("/auth/me", h.Me)

		authed.GET("/trello/board", h.GetDefaultBoard)
		authed.GET("/trello/boards/:boardId", h.GetBoard)
		authed.GET("/trello/boards/:boardId/lists", h.GetLists)

		authed.GET("/google/chat/webhooks", h.ListDestinations)
		authed.POST("/google/chat/send/:cardId", h.SendCard)

		admin := authed.Group("", RequireAdmin())
		admin.POST("/google/chat/webhooks", h.CreateDestination)
		admin.PUT("/google/chat/webhooks/:webhookId", h.UpdateDestination)
		admin.DELETE("/google/chat/webhooks/:webhookId", h.DeleteDestination)

		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:userId/webhooks", h.SetUserDestinations)
	}

	return router
}
