package addressControllers

import (
	"context"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"gorm.io/gorm"
)

const addressNotFound = "Address not found"

type AddressInput struct {
	FullName     string  `json:"full_name" binding:"required"`
	AddressLine1 string  `json:"address_line1" binding:"required"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	ZipCode      string  `json:"zip_code" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	IsDefault    bool    `json:"is_default"`
}

// AddressPatch applies only the fields the client sent. AddressLine2 is the
// only field that may be cleared with null.
type AddressPatch struct {
	FullName     models.Optional[string]  `json:"full_name"`
	AddressLine1 models.Optional[string]  `json:"address_line1"`
	AddressLine2 models.Optional[*string] `json:"address_line2"`
	City         models.Optional[string]  `json:"city"`
	State        models.Optional[string]  `json:"state"`
	ZipCode      models.Optional[string]  `json:"zip_code"`
	Country      models.Optional[string]  `json:"country"`
	IsDefault    models.Optional[bool]    `json:"is_default"`
}

func List(ctx context.Context, db *gorm.DB, userID uint) ([]models.Address, error) {
	addresses := []models.Address{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id").
		Find(&addresses).Error
	if err != nil {
		return nil, apperr.FromDB(err, addressNotFound)
	}
	return addresses, nil
}

// Create stores a new address. A new default demotes the user's previous
// default inside the same transaction.
func Create(ctx context.Context, db *gorm.DB, userID uint, in AddressInput) (*models.Address, error) {
	address := models.Address{
		UserID:       userID,
		FullName:     strings.TrimSpace(in.FullName),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: in.AddressLine2,
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		Country:      strings.TrimSpace(in.Country),
		IsDefault:    in.IsDefault,
	}
	if err := validate(&address); err != nil {
		return nil, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaults(tx, userID, 0); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, addressNotFound)
	}
	return &address, nil
}

// Update patches one of the user's addresses. Setting is_default clears every
// other default of the user before the target is saved.
func Update(ctx context.Context, db *gorm.DB, userID, addressID uint, patch AddressPatch) (*models.Address, error) {
	var address models.Address
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			return apperr.FromDB(err, addressNotFound)
		}

		if err := apply(&address, patch); err != nil {
			return err
		}
		if err := validate(&address); err != nil {
			return err
		}

		if patch.IsDefault.Present() && patch.IsDefault.Value {
			if err := clearDefaults(tx, userID, address.ID); err != nil {
				return err
			}
		}
		return tx.Save(&address).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err, addressNotFound)
	}
	return &address, nil
}

// Delete removes an address. Another address is not promoted when the
// default goes away.
func Delete(ctx context.Context, db *gorm.DB, userID, addressID uint) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, addressNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(addressNotFound)
	}
	return nil
}

func clearDefaults(tx *gorm.DB, userID, exceptID uint) error {
	q := tx.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}

func apply(a *models.Address, p AddressPatch) error {
	fields := []struct {
		name string
		opt  models.Optional[string]
		dst  *string
	}{
		{"full_name", p.FullName, &a.FullName},
		{"address_line1", p.AddressLine1, &a.AddressLine1},
		{"city", p.City, &a.City},
		{"state", p.State, &a.State},
		{"zip_code", p.ZipCode, &a.ZipCode},
		{"country", p.Country, &a.Country},
	}
	for _, f := range fields {
		if !f.opt.Set {
			continue
		}
		if f.opt.Null {
			return apperr.InvalidInput("%s cannot be null", f.name)
		}
		*f.dst = strings.TrimSpace(f.opt.Value)
	}

	if p.AddressLine2.Set {
		a.AddressLine2 = p.AddressLine2.Value
	}
	if p.IsDefault.Set {
		if p.IsDefault.Null {
			return apperr.InvalidInput("is_default cannot be null")
		}
		a.IsDefault = p.IsDefault.Value
	}
	return nil
}

func validate(a *models.Address) error {
	for _, f := range []struct{ name, value string }{
		{"full_name", a.FullName},
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"zip_code", a.ZipCode},
		{"country", a.Country},
	} {
		if f.value == "" {
			return apperr.InvalidInput("%s is required", f.name)
		}
	}
	return nil
}
