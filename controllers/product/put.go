package productcontroller

import (
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProduct applies only the fields present in the body.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch ProductPatch
		if err := controllers.BindJSON(c, &patch); err != nil {
			apperr.Respond(c, err)
			return
		}

		product, err := Update(c.Request.Context(), db, c.Param("id"), patch)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
