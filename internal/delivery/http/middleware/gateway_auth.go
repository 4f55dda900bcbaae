package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GatewayAuthMiddleware verifies that webhook calls really come from the chat
// gateway: every request must carry a bearer token signed with the shared
// secret. No per-user identity is involved, the gateway is the only caller.
type GatewayAuthMiddleware struct {
	secret string
}

func NewGatewayAuthMiddleware(secret string) *GatewayAuthMiddleware {
	return &GatewayAuthMiddleware{secret: secret}
}

func (m *GatewayAuthMiddleware) RequireGateway() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
			})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		c.Next()
	}
}
