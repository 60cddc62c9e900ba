package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists the catalogue.
// Query: ?category=Sarees&skip=0&limit=100
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, err := queryInt(c, "skip", 0)
		if err != nil {
			apperr.Respond(c, apperr.InvalidInput("Invalid skip"))
			return
		}
		limit, err := queryInt(c, "limit", maxPageSize)
		if err != nil {
			apperr.Respond(c, apperr.InvalidInput("Invalid limit"))
			return
		}

		products, err := List(c.Request.Context(), db, ListFilter{
			Category: c.Query("category"),
			Skip:     skip,
			Limit:    limit,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
