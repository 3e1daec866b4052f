package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curately/curately/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// clientIdentity extracts the client IP used as the view dedupe identity,
// walking the proxy headers before falling back to the socket address.
func clientIdentity(c *gin.Context) string {
	headers := []string{
		"X-Forwarded-For",
		"Proxy-Client-IP",
		"WL-Proxy-Client-IP",
		"X-Real-IP",
	}
	for _, h := range headers {
		ip := c.GetHeader(h)
		if ip == "" || strings.EqualFold(ip, "unknown") {
			continue
		}
		// X-Forwarded-For may hold a chain; the first hop is the client.
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	return c.ClientIP()
}
