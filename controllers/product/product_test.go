package productcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/database/dbtest"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ProductSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(ProductSuite))
}

func (s *ProductSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = dbtest.Open(s.T())
}

func newInput(id, category string) ProductInput {
	return ProductInput{
		ID:        id,
		Name:      "Banarasi " + id,
		Price:     decimal.RequireFromString("2450.00"),
		Category:  category,
		Materials: []string{"Pure silk", "Zari"},
		Sizes:     []string{"Free"},
		Colors:    []models.Color{{Name: "Crimson", Available: true}, {Name: "Gold", Available: false}},
		MadeIn:    "Varanasi",
	}
}

func (s *ProductSuite) patch(raw string) ProductPatch {
	var p ProductPatch
	s.Require().NoError(json.Unmarshal([]byte(raw), &p))
	return p
}

func (s *ProductSuite) TestCreateAndGet() {
	created, err := Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.Require().NoError(err)
	s.Equal("sar-001", created.ID)

	got, err := Get(s.ctx, s.db, "sar-001")
	s.Require().NoError(err)
	s.Equal([]string{"Pure silk", "Zari"}, got.Materials)
	s.Equal([]string{}, got.Care)
	s.Len(got.Colors, 2)
	s.False(got.Colors[1].Available)
	s.True(got.Price.Equal(decimal.NewFromInt(2450)))

	_, err = Get(s.ctx, s.db, "nope")
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *ProductSuite) TestCreateRejectsDuplicatesAndBadPrice() {
	_, err := Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.Require().NoError(err)

	_, err = Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.ErrorIs(err, apperr.ErrConflict)

	in := newInput("sar-002", "Sarees")
	in.Price = decimal.Zero
	_, err = Create(s.ctx, s.db, in)
	s.ErrorIs(err, apperr.ErrInvalidInput)
}

func (s *ProductSuite) TestListFiltersAndPages() {
	for _, id := range []string{"a", "b", "c"} {
		_, err := Create(s.ctx, s.db, newInput("sar-"+id, "Sarees"))
		s.Require().NoError(err)
	}
	_, err := Create(s.ctx, s.db, newInput("kur-a", "Kurtas"))
	s.Require().NoError(err)

	all, err := List(s.ctx, s.db, ListFilter{Category: "All"})
	s.Require().NoError(err)
	s.Len(all, 4)

	sarees, err := List(s.ctx, s.db, ListFilter{Category: "Sarees"})
	s.Require().NoError(err)
	s.Len(sarees, 3)

	page, err := List(s.ctx, s.db, ListFilter{Skip: 1, Limit: 2})
	s.Require().NoError(err)
	s.Len(page, 2)

	_, err = List(s.ctx, s.db, ListFilter{Limit: 101})
	s.ErrorIs(err, apperr.ErrInvalidInput)
	_, err = List(s.ctx, s.db, ListFilter{Skip: -1})
	s.ErrorIs(err, apperr.ErrInvalidInput)

	cats, err := Categories(s.ctx, s.db)
	s.Require().NoError(err)
	s.Equal([]CategorySummary{{Name: "Kurtas", Products: 1}, {Name: "Sarees", Products: 3}}, cats)
}

func (s *ProductSuite) TestUpdateAppliesOnlySentFields() {
	_, err := Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.Require().NoError(err)

	updated, err := Update(s.ctx, s.db, "sar-001", s.patch(`{"price": "1999.50", "care": ["Dry clean only"], "materials": null}`))
	s.Require().NoError(err)
	s.True(updated.Price.Equal(decimal.RequireFromString("1999.50")))
	s.Equal([]string{"Dry clean only"}, updated.Care)
	s.Equal([]string{}, updated.Materials)
	s.Equal("Banarasi sar-001", updated.Name)

	reloaded, err := Get(s.ctx, s.db, "sar-001")
	s.Require().NoError(err)
	s.Equal([]string{"Dry clean only"}, reloaded.Care)
	s.Len(reloaded.Colors, 2)

	_, err = Update(s.ctx, s.db, "sar-001", s.patch(`{"name": null}`))
	s.ErrorIs(err, apperr.ErrInvalidInput)
	_, err = Update(s.ctx, s.db, "sar-001", s.patch(`{"price": -5}`))
	s.ErrorIs(err, apperr.ErrInvalidInput)
	_, err = Update(s.ctx, s.db, "missing", s.patch(`{"name": "x"}`))
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *ProductSuite) TestDeleteCascadesToCartAndDetachesOrders() {
	_, err := Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.Require().NoError(err)
	user := dbtest.CreateUser(s.T(), s.db, "buyer@example.com", false)

	s.Require().NoError(s.db.Create(&models.CartLine{UserID: user.ID, ProductID: "sar-001", Quantity: 1}).Error)
	productID := "sar-001"
	order := models.Order{
		UserID:          user.ID,
		Status:          models.OrderStatusPending,
		Subtotal:        decimal.NewFromInt(2450),
		Tax:             decimal.RequireFromString("441"),
		Shipping:        decimal.Zero,
		Total:           decimal.NewFromInt(2891),
		ShippingAddress: json.RawMessage(`{"city":"Jaipur"}`),
		Items: []models.OrderItem{{
			ProductID: &productID, ProductName: "Banarasi sar-001", Quantity: 1, Price: decimal.NewFromInt(2450),
		}},
	}
	s.Require().NoError(s.db.Create(&order).Error)

	s.Require().NoError(Delete(s.ctx, s.db, "sar-001"))
	s.ErrorIs(Delete(s.ctx, s.db, "sar-001"), apperr.ErrNotFound)

	s.EqualValues(0, dbtest.Count(s.T(), s.db, &models.CartLine{}))

	var item models.OrderItem
	s.Require().NoError(s.db.First(&item, "order_id = ?", order.ID).Error)
	s.Nil(item.ProductID)
	s.Equal("Banarasi sar-001", item.ProductName)
}

func (s *ProductSuite) TestWorkbookRoundTrip() {
	_, err := Create(s.ctx, s.db, newInput("sar-001", "Sarees"))
	s.Require().NoError(err)
	_, err = Create(s.ctx, s.db, newInput("sar-002", "Sarees"))
	s.Require().NoError(err)

	book, err := BuildWorkbook(s.ctx, s.db)
	s.Require().NoError(err)

	sheet := book.Sheets[0]
	sheet.Rows[1].Cells[1].SetString("Renamed")
	extra := sheet.AddRow()
	for _, v := range []string{"dup-001", "Dupatta", "850", "Dupattas", "", "", "", "", "Cotton | Silk", "", "", "", "", "Jaipur"} {
		extra.AddCell().SetString(v)
	}
	broken := sheet.AddRow()
	for _, v := range []string{"bad-001", "Broken", "free", "Misc"} {
		broken.AddCell().SetString(v)
	}

	var buf bytes.Buffer
	s.Require().NoError(book.Write(&buf))
	reopened, err := xlsx.OpenBinary(buf.Bytes())
	s.Require().NoError(err)

	res, err := ImportWorkbook(s.ctx, s.db, reopened)
	s.Require().NoError(err)
	s.Equal(ImportResult{Created: 1, Updated: 2, Skipped: 1}, res)

	renamed, err := Get(s.ctx, s.db, "sar-001")
	s.Require().NoError(err)
	s.Equal("Renamed", renamed.Name)
	s.Len(renamed.Colors, 2)
	s.Equal([]string{"Pure silk", "Zari"}, renamed.Materials)

	dupatta, err := Get(s.ctx, s.db, "dup-001")
	s.Require().NoError(err)
	s.Equal([]string{"Cotton", "Silk"}, dupatta.Materials)
	s.True(dupatta.Price.Equal(decimal.NewFromInt(850)))
}

func (s *ProductSuite) TestImportRejectsEmptyWorkbook() {
	_, err := ImportWorkbook(s.ctx, s.db, xlsx.NewFile())
	s.ErrorIs(err, apperr.ErrInvalidInput)
}
