package controller

import (
	"errors"
	"fmt"
	"net/http"

	"go-scoundrel/dto"
	"go-scoundrel/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const leaderboardCacheControl = "s-maxage=30, stale-while-revalidate=60"

type LeaderboardController struct {
	svc    *service.LeaderboardService
	logger *zap.Logger
}

func NewLeaderboardController(svc *service.LeaderboardService, logger *zap.Logger) *LeaderboardController {
	return &LeaderboardController{svc: svc, logger: logger}
}

func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	entries, err := lc.svc.Leaderboard(c.Request.Context())
	if err != nil {
		lc.logger.Error("leaderboard fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}
	c.Header("Cache-Control", leaderboardCacheControl)
	c.JSON(http.StatusOK, entries)
}

func (lc *LeaderboardController) GetDailyLeaderboard(c *gin.Context) {
	entries, err := lc.svc.DailyLeaderboard(c.Request.Context(), c.Query("date"))
	switch {
	case errors.Is(err, service.ErrDateRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date parameter required (format: YYYY-MM-DD)"})
		return
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (expected: YYYY-MM-DD)"})
		return
	case err != nil:
		lc.logger.Error("daily leaderboard fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily leaderboard"})
		return
	}
	c.Header("Cache-Control", leaderboardCacheControl)
	c.JSON(http.StatusOK, entries)
}

func (lc *LeaderboardController) GetDaily(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DailyResponse{Date: lc.svc.Today()})
}

func (lc *LeaderboardController) SubmitScore(c *gin.Context) {
	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	entry, err := lc.svc.SubmitScore(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		lc.submitError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (lc *LeaderboardController) SubmitDailyScore(c *gin.Context) {
	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	entry, err := lc.svc.SubmitDailyScore(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		lc.submitError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (lc *LeaderboardController) submitError(c *gin.Context, err error) {
	status, msg := http.StatusBadRequest, ""
	switch {
	case errors.Is(err, service.ErrInvalidNickname):
		msg = "Invalid nickname (1-20 characters, no special chars)"
	case errors.Is(err, service.ErrInvalidScore):
		msg = "Invalid score data"
	case errors.Is(err, service.ErrDateRequired):
		msg = "Challenge date required"
	case errors.Is(err, service.ErrInvalidDate):
		msg = "Invalid date format (expected: YYYY-MM-DD)"
	case errors.Is(err, service.ErrNotToday):
		msg = "Can only submit scores for today's challenge"
	case errors.Is(err, service.ErrAlreadySubmitted):
		msg = "You have already submitted a score for today's challenge"
	case errors.Is(err, service.ErrRateLimited):
		status = http.StatusTooManyRequests
		msg = fmt.Sprintf("Too many submissions. Wait %d seconds.", int(lc.svc.Cooldown().Seconds()))
	default:
		lc.logger.Error("score submission failed", zap.Error(err))
		status, msg = http.StatusInternalServerError, "Failed to submit score"
	}
	c.JSON(status, gin.H{"error": msg})
}
