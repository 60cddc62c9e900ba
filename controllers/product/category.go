package productcontroller

import (
	"context"
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategorySummary struct {
	Name     string `json:"name"`
	Products int64  `json:"products"`
}

// Categories lists the distinct product categories with their sizes.
func Categories(ctx context.Context, db *gorm.DB) ([]CategorySummary, error) {
	summaries := []CategorySummary{}
	err := db.WithContext(ctx).Model(&models.Product{}).
		Select("category AS name, COUNT(*) AS products").
		Group("category").
		Order("category").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Category not found")
	}
	return summaries, nil
}

// GET /api/products/categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := Categories(c.Request.Context(), db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
