package productcontroller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportWorkbook upserts every row of the first sheet by product id. Rows
// that fail validation are skipped and counted, never fatal.
func ImportWorkbook(ctx context.Context, db *gorm.DB, file *xlsx.File) (ImportResult, error) {
	var res ImportResult
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return res, apperr.InvalidInput("Excel file is empty or missing header row")
	}
	log := zerolog.Ctx(ctx)
	db = db.WithContext(ctx)

	sheet := file.Sheets[0]
	for i := 1; i < sheet.MaxRow; i++ {
		product, err := rowToProduct(sheet.Rows[i])
		if err != nil {
			log.Debug().Err(err).Int("row", i+1).Msg("skipping product row")
			res.Skipped++
			continue
		}

		var existing models.Product
		err = db.First(&existing, "id = ?", product.ID).Error
		switch {
		case err == nil:
			product.CreatedAt = existing.CreatedAt
			if err := db.Save(&product).Error; err != nil {
				res.Skipped++
				continue
			}
			res.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&product).Error; err != nil {
				res.Skipped++
				continue
			}
			res.Created++
		default:
			return res, apperr.FromDB(err, productNotFound)
		}
	}
	return res, nil
}

func rowToProduct(row *xlsx.Row) (models.Product, error) {
	get := func(i int) string {
		if row != nil && i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].String())
		}
		return ""
	}

	price, err := decimal.NewFromString(get(2))
	if err != nil {
		return models.Product{}, errors.New("invalid price")
	}

	colors := []models.Color{}
	if raw := get(12); raw != "" {
		if err := json.Unmarshal([]byte(raw), &colors); err != nil {
			return models.Product{}, errors.New("invalid colors")
		}
	}

	p := models.Product{
		ID:              get(0),
		Name:            get(1),
		Price:           price,
		Category:        get(3),
		Description:     get(4),
		LongDescription: get(5),
		Image:           get(6),
		HoverImage:      get(7),
		Materials:       splitList(get(8)),
		Care:            splitList(get(9)),
		Details:         splitList(get(10)),
		Sizes:           splitList(get(11)),
		Colors:          colors,
		MadeIn:          get(13),
	}
	if err := validate(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func splitList(cell string) []string {
	out := []string{}
	for _, part := range strings.Split(cell, strings.TrimSpace(listSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// POST /api/admin/products/import (multipart field "file")
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			apperr.Respond(c, apperr.InvalidInput("Excel file is required"))
			return
		}

		f, err := header.Open()
		if err != nil {
			apperr.Respond(c, apperr.Internal(err, "open upload"))
			return
		}
		defer f.Close()

		file, err := xlsx.OpenReaderAt(f, header.Size)
		if err != nil {
			apperr.Respond(c, apperr.InvalidInput("Failed to parse Excel file"))
			return
		}

		res, err := ImportWorkbook(c.Request.Context(), db, file)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"updated_count": res.Updated,
			"skipped_count": res.Skipped,
		})
	}
}
