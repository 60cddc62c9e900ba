package productcontroller

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// sheetColumns is the column layout shared by export and import.
var sheetColumns = []string{
	"ID", "Name", "Price", "Category", "Description", "LongDescription",
	"Image", "HoverImage", "Materials", "Care", "Details", "Sizes",
	"Colors", "MadeIn", "CreatedAt", "UpdatedAt",
}

// listSeparator joins string lists inside one cell.
const listSeparator = " | "

// BuildWorkbook writes the catalogue into a single "Products" sheet.
func BuildWorkbook(ctx context.Context, db *gorm.DB) (*xlsx.File, error) {
	var products []models.Product
	if err := db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, apperr.FromDB(err, productNotFound)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, apperr.Internal(err, "create sheet")
	}

	header := sheet.AddRow()
	for _, h := range sheetColumns {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		colors, err := json.Marshal(p.Colors)
		if err != nil {
			return nil, apperr.Internal(err, "encode colors")
		}

		row := sheet.AddRow()
		for _, v := range []string{
			p.ID,
			p.Name,
			p.Price.StringFixed(2),
			p.Category,
			p.Description,
			p.LongDescription,
			p.Image,
			p.HoverImage,
			strings.Join(p.Materials, listSeparator),
			strings.Join(p.Care, listSeparator),
			strings.Join(p.Details, listSeparator),
			strings.Join(p.Sizes, listSeparator),
			string(colors),
			p.MadeIn,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		} {
			row.AddCell().SetString(v)
		}
	}
	return file, nil
}

// GET /api/admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := BuildWorkbook(c.Request.Context(), db)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			apperr.Respond(c, apperr.Internal(err, "write workbook"))
			return
		}
	}
}
