package database_test

import (
	"testing"

	"github.com/Burhanmalu/LUMARIYA/database/dbtest"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func address(userID uint, isDefault bool) *models.Address {
	return &models.Address{
		UserID: userID, FullName: "Meera", AddressLine1: "4 Lake View",
		City: "Udaipur", State: "RJ", ZipCode: "313001", Country: "IN", IsDefault: isDefault,
	}
}

func TestAutoMigrateEnforcesOneDefaultAddress(t *testing.T) {
	db := dbtest.Open(t)
	meera := dbtest.CreateUser(t, db, "meera@example.com", false)
	other := dbtest.CreateUser(t, db, "other@example.com", false)

	require.NoError(t, db.Create(address(meera.ID, true)).Error)
	require.NoError(t, db.Create(address(meera.ID, false)).Error)
	require.NoError(t, db.Create(address(other.ID, true)).Error)

	assert.Error(t, db.Create(address(meera.ID, true)).Error, "second default for one user")
}

func TestAutoMigrateEnforcesCartLineIdentity(t *testing.T) {
	db := dbtest.Open(t)
	user := dbtest.CreateUser(t, db, "cart@example.com", false)
	dbtest.CreateProduct(t, db, "saree-1", "2450")
	size := "M"

	require.NoError(t, db.Create(&models.CartLine{UserID: user.ID, ProductID: "saree-1", Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.CartLine{UserID: user.ID, ProductID: "saree-1", Quantity: 1, Size: &size}).Error)

	assert.Error(t, db.Create(&models.CartLine{UserID: user.ID, ProductID: "saree-1", Quantity: 2}).Error,
		"absent size and colour collide with an existing absent line")
	assert.Error(t, db.Create(&models.CartLine{UserID: user.ID, ProductID: "saree-1", Quantity: 2, Size: &size}).Error)
}

func TestAutoMigrateCheckConstraints(t *testing.T) {
	db := dbtest.Open(t)
	user := dbtest.CreateUser(t, db, "checks@example.com", false)
	dbtest.CreateProduct(t, db, "saree-1", "2450")

	assert.Error(t, db.Create(&models.CartLine{UserID: user.ID, ProductID: "saree-1", Quantity: -1}).Error)
	assert.Error(t, db.Create(&models.Product{ID: "free", Name: "Free", Category: "Sarees", Price: decimal.Zero}).Error)
	assert.Error(t, db.Create(&models.Order{UserID: user.ID, Status: "lost"}).Error)
	assert.Error(t, db.Create(&models.User{Email: "nobody@example.com", FullName: "Nobody"}).Error,
		"a user needs a password or a linked provider")
}
