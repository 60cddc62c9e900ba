package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	TaxRate               = decimal.RequireFromString("0.18")
	FreeShippingThreshold = decimal.NewFromInt(5000)
	FlatShipping          = decimal.NewFromInt(200)
)

type CheckoutItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

type CheckoutInput struct {
	Items           []CheckoutItem  `json:"items" binding:"dive"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
}

type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Price computes order totals. Tax is charged on the subtotal only and
// shipping is free strictly above the threshold.
func Price(lines []PricedLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	tax := subtotal.Mul(TaxRate).Round(2)
	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// Checkout prices the requested lines at current catalogue prices and stores
// the order with its items in one transaction. The cart is left untouched.
func Checkout(ctx context.Context, db *gorm.DB, userID uint, in CheckoutInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.InvalidInput("Order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, apperr.InvalidInput("Quantity for product %s must be greater than zero", it.ProductID)
		}
	}
	address, err := shippingSnapshot(in.ShippingAddress)
	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		products := make(map[string]*models.Product, len(in.Items))
		lines := make([]PricedLine, 0, len(in.Items))
		items := make([]models.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			product, ok := products[it.ProductID]
			if !ok {
				product = &models.Product{}
				if err := tx.First(product, "id = ?", it.ProductID).Error; err != nil {
					return apperr.FromDB(err, "Product "+it.ProductID+" not found")
				}
				products[it.ProductID] = product
			}

			lines = append(lines, PricedLine{UnitPrice: product.Price, Quantity: it.Quantity})
			productID := product.ID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				Price:       product.Price,
				Size:        it.Size,
				Color:       it.Color,
			})
		}

		totals := Price(lines)
		order = models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Total:           totals.Total,
			ShippingAddress: address,
			Items:           items,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, "Order not found")
	}

	return findOrder(db, "id = ?", order.ID)
}

// shippingSnapshot keeps the caller's address payload as sent. Any JSON value
// is accepted; an absent one is stored as null.
func shippingSnapshot(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(trimmed) {
		return nil, apperr.InvalidInput("Shipping address must be valid JSON")
	}
	return json.RawMessage(trimmed), nil
}
