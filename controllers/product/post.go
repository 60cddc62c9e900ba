package productcontroller

import (
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProduct adds a product under a caller-chosen id.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		product, err := Create(c.Request.Context(), db, input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
