package router

import (
	"net/http"

	"go-scoundrel/controller"
	"go-scoundrel/middleware"
	"go-scoundrel/ws"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Leaderboard *controller.LeaderboardController
	Player      *controller.PlayerController
	Auth        middleware.Authenticator
	Hub         *ws.Hub
}

func InitRouter(r *gin.Engine, h Handlers) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/healthz", controller.Health)

	// 排行榜接口路由
	api := r.Group("/api")
	{
		api.GET("/leaderboard", h.Leaderboard.GetLeaderboard)
		api.POST("/submit-score", h.Leaderboard.SubmitScore)
		api.GET("/daily-leaderboard", h.Leaderboard.GetDailyLeaderboard)
		api.POST("/submit-daily-score", h.Leaderboard.SubmitDailyScore)
		api.GET("/daily", h.Leaderboard.GetDaily)
	}

	player := r.Group("/player")
	{
		player.POST("/login", h.Player.Login)
		player.GET("/profile", middleware.AuthMiddleware(h.Auth), h.Player.Profile)
	}

	// WebSocket 路由
	r.GET("/ws", h.Hub.HandleWebSocket)
}
