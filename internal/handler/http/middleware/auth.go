package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curately/curately/internal/handler/http/dto"
	"github.com/curately/curately/internal/infrastructure/jwt"
)

// MemberIDKey is the gin context key the auth middleware stores the
// authenticated member id under.
const MemberIDKey = "memberID"

// AuthMiddleWare validates the bearer token and stores the member id in the
// request context. Tokens are issued by the identity service; this only
// verifies them.
func AuthMiddleWare(mgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing bearer token"})
			return
		}
		memberID, err := mgr.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid token"})
			return
		}
		c.Set(MemberIDKey, memberID)
		c.Next()
	}
}

// OptionalAuth stores the member id when a valid bearer token is present and
// leaves the request anonymous otherwise.
func OptionalAuth(mgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if memberID, err := mgr.VerifyToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(MemberIDKey, memberID)
			}
		}
		c.Next()
	}
}
