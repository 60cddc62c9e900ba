package cartControllers

import (
	"context"
	"errors"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"gorm.io/gorm"
)

const lineNotFound = "Cart item not found"

type AddItemInput struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// addAttempts bounds AddItem retries. A concurrent add of the same line can
// win the insert race; the retry then finds that line and increments it.
const addAttempts = 2

// AddItem puts a product in the user's cart. A line with the same product,
// size and colour absorbs the quantity instead of creating a second line.
func AddItem(ctx context.Context, db *gorm.DB, userID uint, in AddItemInput) (*models.CartLine, error) {
	if in.Quantity <= 0 {
		return nil, apperr.InvalidInput("Quantity must be greater than zero")
	}
	in.Size, in.Color = normalize(in.Size), normalize(in.Color)

	var (
		line *models.CartLine
		err  error
	)
	for attempt := 1; attempt <= addAttempts; attempt++ {
		line, err = addOrMerge(db.WithContext(ctx), userID, in)
		if err == nil || !apperr.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, apperr.FromDB(err, lineNotFound)
	}
	return line, nil
}

func addOrMerge(db *gorm.DB, userID uint, in AddItemInput) (*models.CartLine, error) {
	var line models.CartLine
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, "id = ?", in.ProductID).Error; err != nil {
			return apperr.FromDB(err, "Product not found")
		}

		q := tx.Where("user_id = ? AND product_id = ?", userID, in.ProductID)
		q = whereNullable(q, "size", in.Size)
		q = whereNullable(q, "color", in.Color)

		err := q.First(&line).Error
		switch {
		case err == nil:
			if err := tx.Model(&line).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", in.Quantity)).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartLine{
				UserID:    userID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				Size:      in.Size,
				Color:     in.Color,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Preload("Product").First(&line, line.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateQuantity replaces the quantity of one of the user's lines.
func UpdateQuantity(ctx context.Context, db *gorm.DB, userID, lineID uint, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, apperr.InvalidInput("Quantity must be greater than zero")
	}
	db = db.WithContext(ctx)

	res := db.Model(&models.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, lineNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(lineNotFound)
	}

	var line models.CartLine
	if err := db.Preload("Product").First(&line, lineID).Error; err != nil {
		return nil, apperr.FromDB(err, lineNotFound)
	}
	return &line, nil
}

func RemoveItem(ctx context.Context, db *gorm.DB, userID, lineID uint) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, lineNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(lineNotFound)
	}
	return nil
}

// Clear empties the cart. An already empty cart is not an error.
func Clear(ctx context.Context, db *gorm.DB, userID uint) error {
	err := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
	return apperr.FromDB(err, lineNotFound)
}

// ListItems returns the cart with the current product data joined in.
func ListItems(ctx context.Context, db *gorm.DB, userID uint) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, apperr.FromDB(err, lineNotFound)
	}
	return lines, nil
}

// normalize treats a blank size or colour the same as none.
func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func whereNullable(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}
