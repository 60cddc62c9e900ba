package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/controllers"
	"github.com/Burhanmalu/LUMARIYA/events"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CheckoutRecorder counts checkout outcomes.
type CheckoutRecorder interface {
	CheckoutSucceeded()
	CheckoutFailed()
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, pub events.Publisher, rec CheckoutRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := controllers.BindJSON(c, &input); err != nil {
			rec.CheckoutFailed()
			apperr.Respond(c, err)
			return
		}

		order, err := Checkout(c.Request.Context(), db, middleware.UserID(c), input)
		if err != nil {
			rec.CheckoutFailed()
			apperr.Respond(c, err)
			return
		}
		rec.CheckoutSucceeded()

		publish(c.Request.Context(), pub, events.NewOrderEvent(events.OrderPlaced, order))
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListUserOrders(c.Request.Context(), db, middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := controllers.IDParam(c, "id", orderNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		order, err := GetUserOrder(c.Request.Context(), db, middleware.UserID(c), orderID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/status
// The new status comes from ?new_status= or from a {"status": ...} body.
func UpdateOrderStatusHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := controllers.IDParam(c, "id", orderNotFound)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		status, ok := c.GetQuery("new_status")
		if !ok {
			var req UpdateOrderStatusRequest
			if err := controllers.BindJSON(c, &req); err != nil {
				apperr.Respond(c, err)
				return
			}
			status = req.Status
		}

		order, err := UpdateStatus(c.Request.Context(), db, orderID, status)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		publish(c.Request.Context(), pub, events.NewOrderEvent(events.OrderStatusChanged, order))
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "status": order.Status})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListAllOrders(c.Request.Context(), db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

const publishTimeout = 10 * time.Second

// publish hands e to pub in the background. The order is already committed,
// so delivery neither delays nor fails the response.
func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	go func() {
		defer cancel()
		if err := pub.Publish(ctx, e); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("event", string(e.Type)).
				Uint("order_id", e.OrderID).
				Msg("order event not delivered")
		}
	}()
}

