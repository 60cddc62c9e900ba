package cartControllers

import (
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := ListItems(c.Request.Context(), db, middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// POST /api/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		line, err := AddItem(c.Request.Context(), db, middleware.UserID(c), input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

// PUT /api/cart/items/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, err := controllers.IDParam(c, "id", lineNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input UpdateQuantityInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		line, err := UpdateQuantity(c.Request.Context(), db, middleware.UserID(c), lineID, input.Quantity)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// DELETE /api/cart/items/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, err := controllers.IDParam(c, "id", lineNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := RemoveItem(c.Request.Context(), db, middleware.UserID(c), lineID); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DELETE /api/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Clear(c.Request.Context(), db, middleware.UserID(c)); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
