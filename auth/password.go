package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

const badCredentials = "Incorrect email or password"

func Register(ctx context.Context, db *gorm.DB, in RegisterInput) (*models.User, error) {
	if len(in.Password) < 6 {
		return nil, apperr.InvalidInput("Password must be at least 6 characters")
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, apperr.InvalidInput("full_name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}
	hashed := string(hash)

	user := models.User{
		Email:        normalizeEmail(in.Email),
		FullName:     name,
		PasswordHash: &hashed,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.FromDB(err, "User not found")
	}
	return &user, nil
}

// Login checks a password credential. Unknown emails and OAuth-only accounts
// fail the same way as a wrong password.
func Login(ctx context.Context, db *gorm.DB, in LoginInput) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized(badCredentials)
	}
	if err != nil {
		return nil, apperr.FromDB(err, badCredentials)
	}

	if user.PasswordHash == nil {
		return nil, apperr.Unauthorized(badCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized(badCredentials)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
