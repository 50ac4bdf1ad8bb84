package controller

import (
	"errors"
	"io"
	"net/http"

	"go-scoundrel/dto"
	"go-scoundrel/middleware"
	"go-scoundrel/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlayerController struct {
	players  *service.PlayerService
	profiles *service.ProfileService
	logger   *zap.Logger
}

func NewPlayerController(players *service.PlayerService, profiles *service.ProfileService, logger *zap.Logger) *PlayerController {
	return &PlayerController{players: players, profiles: profiles, logger: logger}
}

func (pc *PlayerController) Login(c *gin.Context) {
	var req dto.LoginRequest
	// 空请求体视为新玩家
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	resp, err := pc.players.Login(req)
	if err != nil {
		pc.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (pc *PlayerController) Profile(c *gin.Context) {
	resp, err := pc.profiles.ProfileResponse(c.Request.Context(), middleware.PlayerID(c))
	if err != nil {
		pc.logger.Error("profile fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取玩家档案失败"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
