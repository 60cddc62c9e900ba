package models

import "time"

// CartLine is one product/size/colour entry in a user's cart. The product is
// joined live, so a cart always shows current catalogue data.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID string    `gorm:"type:varchar(64);not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1;check:chk_cart_quantity,quantity > 0" json:"quantity"`
	Size      *string   `json:"size"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartLine) TableName() string {
	return "cart"
}
