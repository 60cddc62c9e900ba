package middleware

import (
	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after Authenticate.
func RequireAdmin(c *gin.Context) {
	if !IsAdmin(c) {
		apperr.Respond(c, apperr.Forbidden("Admin access required"))
		return
	}
	c.Next()
}
