package adminController

import (
	"context"
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ToggleRole flips the admin flag of userID. Admins cannot change their own
// flag, which keeps at least the acting admin in place.
func ToggleRole(ctx context.Context, db *gorm.DB, actorID, userID uint) (*models.User, error) {
	if actorID == userID {
		return nil, apperr.Forbidden("Cannot change your own admin status")
	}

	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.IsAdmin = !user.IsAdmin
		return tx.Model(&user).Update("is_admin", user.IsAdmin).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, "User not found")
	}
	return &user, nil
}

// PUT /api/admin/users/:id/role
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := controllers.IDParam(c, "id", "User not found")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := ToggleRole(c.Request.Context(), db, middleware.UserID(c), userID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		zerolog.Ctx(c.Request.Context()).Info().
			Uint("actor_id", middleware.UserID(c)).
			Uint("user_id", user.ID).
			Bool("is_admin", user.IsAdmin).
			Msg("admin role changed")

		c.JSON(http.StatusOK, gin.H{"message": "User role updated", "is_admin": user.IsAdmin})
	}
}
