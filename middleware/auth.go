package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const PlayerIDKey = "playerID"

type Authenticator interface {
	Authenticate(token string) (string, error)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			return
		}
		playerID, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token 无效或已过期"})
			return
		}
		c.Set(PlayerIDKey, playerID)
		c.Next()
	}
}

// PlayerID 取出鉴权中间件写入的玩家 ID
func PlayerID(c *gin.Context) string {
	return c.GetString(PlayerIDKey)
}
