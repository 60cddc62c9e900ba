package middleware

import (
	"errors"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userKey    = "user"
	userIDKey  = "user_id"
	isAdminKey = "is_admin"
)

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// Authenticate resolves the caller from the Authorization header. Both
// "Bearer <token>" and a bare token are accepted. Websocket upgrades may pass
// the token as ?token= since browsers cannot set headers on them.
func Authenticate(verifier TokenVerifier, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" && c.IsWebsocket() {
			header = c.Query("token")
		}
		if header == "" {
			apperr.Respond(c, apperr.Unauthorized("Authorization header is missing"))
			return
		}
		token := header
		if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(rest)
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			apperr.Respond(c, apperr.Unauthorized("Could not validate credentials"))
			return
		}

		var user models.User
		err = db.WithContext(c.Request.Context()).First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.Unauthorized("Could not validate credentials"))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "load user"))
			return
		}

		c.Set(userKey, &user)
		c.Set(userIDKey, user.ID)
		c.Set(isAdminKey, user.IsAdmin)
		c.Next()
	}
}

// UserID is the authenticated caller's id, zero outside Authenticate.
func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
