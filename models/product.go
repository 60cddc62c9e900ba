package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Color is one colour variant of a product and whether it can be ordered.
type Color struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type Product struct {
	ID              string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_products_price,price > 0" json:"price"`
	Category        string          `gorm:"not null;index" json:"category"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description"`
	Image           string          `json:"image"`
	HoverImage      string          `json:"hover_image"`
	Materials       []string        `gorm:"serializer:json;type:jsonb" json:"materials"`
	Care            []string        `gorm:"serializer:json;type:jsonb" json:"care"`
	Details         []string        `gorm:"serializer:json;type:jsonb" json:"details"`
	Sizes           []string        `gorm:"serializer:json;type:jsonb" json:"sizes"`
	Colors          []Color         `gorm:"serializer:json;type:jsonb" json:"colors"`
	MadeIn          string          `json:"made_in"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
