package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuthRequired gates admin routes on the configured API key. Token
// issuance lives with the external identity provider; the service only
// verifies the key it was handed.
func (s *Server) AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminAPIKey == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		key := strings.TrimSpace(c.GetHeader("X-Admin-Api-Key"))
		if key == "" {
			if bearer := strings.TrimSpace(c.GetHeader("Authorization")); strings.HasPrefix(bearer, "Bearer ") {
				key = strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
			}
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.AdminAPIKey)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
