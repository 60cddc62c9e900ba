package models

import "time"

type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"-"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	AddressLine1 string    `gorm:"column:address_line1;not null" json:"address_line1"`
	AddressLine2 *string   `gorm:"column:address_line2" json:"address_line2"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	ZipCode      string    `gorm:"not null" json:"zip_code"`
	Country      string    `gorm:"not null" json:"country"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
