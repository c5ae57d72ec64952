// internal/middleware/auth_middleware.go
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"printer-service/internal/apperror"
	"printer-service/internal/auth"
	"printer-service/internal/model"
	"printer-service/internal/utils"
)

const (
	// ClientKey holds the authenticated *model.ClientRecord, nil when auth is off
	ClientKey       = "client"
	HeaderPrinterID = "x-printer-id"
)

// ClientAuthMiddleware guards privileged endpoints with the client gate
func ClientAuthMiddleware(gate *auth.Gate, securityLogger *utils.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(auth.HeaderClientID)
		client, reason, err := gate.Authorize(c.Request.Context(), clientID, c.GetHeader(auth.HeaderPrintKey))
		if err != nil {
			securityLogger.LogAuthAttempt(clientID, c.ClientIP(), c.Request.UserAgent(), false, reason)
			utils.AbortWithAppError(c, err)
			return
		}
		if gate.Enabled() {
			securityLogger.LogAuthAttempt(clientID, c.ClientIP(), c.Request.UserAgent(), true, "")
		}
		c.Set(ClientKey, client)
		c.Next()
	}
}

// AdminTokenMiddleware requires "Authorization: Bearer <token>" when token is set
func AdminTokenMiddleware(token string, securityLogger *utils.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		presented := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if presented == "" {
			securityLogger.LogAuthAttempt("admin", c.ClientIP(), c.Request.UserAgent(), false, auth.ReasonMissingCredentials)
			utils.AbortWithAppError(c, apperror.Unauthorized("Missing admin token"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			securityLogger.LogAuthAttempt("admin", c.ClientIP(), c.Request.UserAgent(), false, auth.ReasonWrongKey)
			utils.AbortWithAppError(c, apperror.Forbidden())
			return
		}
		c.Next()
	}
}

// CurrentClient returns the client set by ClientAuthMiddleware
func CurrentClient(c *gin.Context) *model.ClientRecord {
	if v, ok := c.Get(ClientKey); ok {
		if client, ok := v.(*model.ClientRecord); ok {
			return client
		}
	}
	return nil
}
