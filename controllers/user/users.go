package userControllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type ProfilePatch struct {
	FullName models.Optional[string] `json:"full_name"`
	Email    models.Optional[string] `json:"email"`
}

// UpdateProfile changes the caller's name or email. An email held by another
// account is a Conflict.
func UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, patch ProfilePatch) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return apperr.FromDB(err, "User not found")
		}

		if patch.FullName.Set {
			name := strings.TrimSpace(patch.FullName.Value)
			if patch.FullName.Null || name == "" {
				return apperr.InvalidInput("full_name cannot be empty")
			}
			user.FullName = name
		}

		if patch.Email.Set {
			email := strings.ToLower(strings.TrimSpace(patch.Email.Value))
			if patch.Email.Null || validate.Var(email, "required,email") != nil {
				return apperr.InvalidInput("A valid email is required")
			}

			var taken int64
			if err := tx.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, userID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return apperr.Conflict("Email already in use")
			}
			user.Email = email
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, "User not found")
	}
	return &user, nil
}

// ListUsers returns every account, newest first.
func ListUsers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	users := []models.User{}
	err := db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error
	if err != nil {
		return nil, apperr.FromDB(err, "User not found")
	}
	return users, nil
}

// GET /api/users/profile
func GetUser(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := ListUsers(c.Request.Context(), db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /api/users/profile
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch ProfilePatch
		if err := controllers.BindJSON(c, &patch); err != nil {
			apperr.Respond(c, err)
			return
		}

		user, err := UpdateProfile(c.Request.Context(), db, middleware.UserID(c), patch)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
