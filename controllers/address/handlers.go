package addressControllers

import (
	"net/http"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/users/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := List(c.Request.Context(), db, middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/users/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddressInput
		if err := controllers.BindJSON(c, &input); err != nil {
			apperr.Respond(c, err)
			return
		}

		address, err := Create(c.Request.Context(), db, middleware.UserID(c), input)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /api/users/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := controllers.IDParam(c, "id", addressNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var patch AddressPatch
		if err := controllers.BindJSON(c, &patch); err != nil {
			apperr.Respond(c, err)
			return
		}

		address, err := Update(c.Request.Context(), db, middleware.UserID(c), addressID, patch)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /api/users/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := controllers.IDParam(c, "id", addressNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := Delete(c.Request.Context(), db, middleware.UserID(c), addressID); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
