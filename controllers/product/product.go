package productcontroller

import (
	"context"
	"errors"
	"strings"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	productNotFound = "Product not found"
	maxPageSize     = 100
)

type ProductInput struct {
	ID              string          `json:"id" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description"`
	Image           string          `json:"image"`
	HoverImage      string          `json:"hover_image"`
	Materials       []string        `json:"materials"`
	Care            []string        `json:"care"`
	Details         []string        `json:"details"`
	Sizes           []string        `json:"sizes"`
	Colors          []models.Color  `json:"colors"`
	MadeIn          string          `json:"made_in"`
}

func (in ProductInput) toModel() models.Product {
	return models.Product{
		ID:              strings.TrimSpace(in.ID),
		Name:            strings.TrimSpace(in.Name),
		Price:           in.Price,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Image:           in.Image,
		HoverImage:      in.HoverImage,
		Materials:       orEmpty(in.Materials),
		Care:            orEmpty(in.Care),
		Details:         orEmpty(in.Details),
		Sizes:           orEmpty(in.Sizes),
		Colors:          in.Colors,
		MadeIn:          in.MadeIn,
	}
}

// ProductPatch carries an admin edit. Name, price and category cannot be
// cleared; a null text field becomes empty and a null list becomes [].
type ProductPatch struct {
	Name            models.Optional[string]          `json:"name"`
	Price           models.Optional[decimal.Decimal] `json:"price"`
	Category        models.Optional[string]          `json:"category"`
	Description     models.Optional[string]          `json:"description"`
	LongDescription models.Optional[string]          `json:"long_description"`
	Image           models.Optional[string]          `json:"image"`
	HoverImage      models.Optional[string]          `json:"hover_image"`
	Materials       models.Optional[[]string]        `json:"materials"`
	Care            models.Optional[[]string]        `json:"care"`
	Details         models.Optional[[]string]        `json:"details"`
	Sizes           models.Optional[[]string]        `json:"sizes"`
	Colors          models.Optional[[]models.Color]  `json:"colors"`
	MadeIn          models.Optional[string]          `json:"made_in"`
}

type ListFilter struct {
	Category string
	Skip     int
	Limit    int
}

// List pages through the catalogue. "All" and the empty category mean no
// filter.
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]models.Product, error) {
	if f.Skip < 0 {
		return nil, apperr.InvalidInput("skip must be >= 0")
	}
	if f.Limit == 0 {
		f.Limit = maxPageSize
	}
	if f.Limit < 1 || f.Limit > maxPageSize {
		return nil, apperr.InvalidInput("limit must be between 1 and %d", maxPageSize)
	}

	q := db.WithContext(ctx).Model(&models.Product{})
	if f.Category != "" && f.Category != "All" {
		q = q.Where("category = ?", f.Category)
	}

	products := []models.Product{}
	if err := q.Order("created_at, id").Offset(f.Skip).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, apperr.FromDB(err, productNotFound)
	}
	return products, nil
}

func Get(ctx context.Context, db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, productNotFound)
	}
	return &product, nil
}

func Create(ctx context.Context, db *gorm.DB, in ProductInput) (*models.Product, error) {
	product := in.toModel()
	if err := validate(&product); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Product ID already exists")
		}
		return nil, apperr.FromDB(err, productNotFound)
	}
	return &product, nil
}

func Update(ctx context.Context, db *gorm.DB, id string, patch ProductPatch) (*models.Product, error) {
	db = db.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, productNotFound)
	}
	if err := apply(&product, patch); err != nil {
		return nil, err
	}
	if err := validate(&product); err != nil {
		return nil, err
	}

	if err := db.Save(&product).Error; err != nil {
		return nil, apperr.FromDB(err, productNotFound)
	}
	return &product, nil
}

// Delete removes a product. The schema drops it from every cart and detaches
// it from past order items, which keep their product name.
func Delete(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperr.FromDB(res.Error, productNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(productNotFound)
	}
	return nil
}

func validate(p *models.Product) error {
	switch {
	case p.ID == "":
		return apperr.InvalidInput("id is required")
	case len(p.ID) > 64:
		return apperr.InvalidInput("id must be at most 64 characters")
	case p.Name == "":
		return apperr.InvalidInput("name is required")
	case p.Category == "":
		return apperr.InvalidInput("category is required")
	case !p.Price.IsPositive():
		return apperr.InvalidInput("price must be greater than zero")
	}
	return nil
}

var errNullRequired = errors.New("cannot be null")

func apply(p *models.Product, patch ProductPatch) error {
	if err := setRequired(&p.Name, patch.Name); err != nil {
		return apperr.InvalidInput("name %v", err)
	}
	if err := setRequired(&p.Category, patch.Category); err != nil {
		return apperr.InvalidInput("category %v", err)
	}
	if patch.Price.Set {
		if patch.Price.Null {
			return apperr.InvalidInput("price %v", errNullRequired)
		}
		p.Price = patch.Price.Value
	}

	setText(&p.Description, patch.Description)
	setText(&p.LongDescription, patch.LongDescription)
	setText(&p.Image, patch.Image)
	setText(&p.HoverImage, patch.HoverImage)
	setText(&p.MadeIn, patch.MadeIn)

	setList(&p.Materials, patch.Materials)
	setList(&p.Care, patch.Care)
	setList(&p.Details, patch.Details)
	setList(&p.Sizes, patch.Sizes)
	if patch.Colors.Set {
		p.Colors = patch.Colors.Value
		if p.Colors == nil {
			p.Colors = []models.Color{}
		}
	}
	return nil
}

func setRequired(dst *string, o models.Optional[string]) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return errNullRequired
	}
	*dst = strings.TrimSpace(o.Value)
	return nil
}

func setText(dst *string, o models.Optional[string]) {
	if o.Set {
		*dst = o.Value
	}
}

func setList(dst *[]string, o models.Optional[[]string]) {
	if o.Set {
		*dst = orEmpty(o.Value)
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
