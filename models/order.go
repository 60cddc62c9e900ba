package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the parcel
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping
)

// OrderStatuses lists every accepted status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';check:chk_orders_status,status IN ('pending','processing','shipped','delivered','cancelled')" json:"status"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_orders_subtotal,subtotal >= 0" json:"subtotal"`
	Tax             decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_orders_tax,tax >= 0" json:"tax"`
	Shipping        decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_orders_shipping,shipping >= 0" json:"shipping"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_orders_total,total >= 0" json:"total"`
	ShippingAddress json.RawMessage `gorm:"serializer:json;type:jsonb" json:"shipping_address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots a product at checkout time. ProductID becomes NULL when
// the product is deleted; ProductName is kept for history.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"-"`
	ProductID   *string         `gorm:"type:varchar(64);index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	ProductName string          `json:"product_name"`
	Quantity    int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Size        *string         `json:"size"`
	Color       *string         `json:"color"`
}
