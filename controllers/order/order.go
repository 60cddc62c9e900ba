package orderControllers

import (
	"context"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"gorm.io/gorm"
)

const orderNotFound = "Order not found"

// AdminOrder is an order with the customer's contact details inlined.
type AdminOrder struct {
	models.Order
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// ParseStatus accepts exactly one of the five lifecycle states.
func ParseStatus(s string) (models.OrderStatus, error) {
	for _, st := range models.OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}

	names := make([]string, len(models.OrderStatuses))
	for i, st := range models.OrderStatuses {
		names[i] = string(st)
	}
	return "", apperr.InvalidInput("Invalid status. Must be one of: %s", strings.Join(names, ", "))
}

// UpdateStatus overwrites the status of any order. Transition legality is not
// checked; every named state is accepted.
func UpdateStatus(ctx context.Context, db *gorm.DB, orderID uint, status string) (*models.Order, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", st)
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, orderNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(orderNotFound)
	}
	return findOrder(db, "id = ?", orderID)
}

// ListUserOrders returns the user's orders, newest first.
func ListUserOrders(ctx context.Context, db *gorm.DB, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := withItems(db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.FromDB(err, orderNotFound)
	}
	return orders, nil
}

// GetUserOrder hides other users' orders behind NotFound.
func GetUserOrder(ctx context.Context, db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	return findOrder(db.WithContext(ctx), "id = ? AND user_id = ?", orderID, userID)
}

func ListAllOrders(ctx context.Context, db *gorm.DB) ([]AdminOrder, error) {
	var orders []models.Order
	err := withItems(db.WithContext(ctx)).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.FromDB(err, orderNotFound)
	}

	out := make([]AdminOrder, 0, len(orders))
	for _, o := range orders {
		row := AdminOrder{Order: o, CustomerName: "Unknown", CustomerEmail: "Unknown"}
		if o.User != nil {
			row.CustomerName = o.User.FullName
			row.CustomerEmail = o.User.Email
		}
		out = append(out, row)
	}
	return out, nil
}

func findOrder(db *gorm.DB, query string, args ...any) (*models.Order, error) {
	var order models.Order
	if err := withItems(db).Where(query, args...).First(&order).Error; err != nil {
		return nil, apperr.FromDB(err, orderNotFound)
	}
	return &order, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id")
	})
}
