package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Kariqs/amexan-store/models"
)

// ProductInput is the full editable state of a product.
type ProductInput struct {
	Name          string           `json:"name" binding:"required"`
	Category      models.Category  `json:"category" binding:"required"`
	CurrentPrice  decimal.Decimal  `json:"currentPrice"`
	PreviousPrice *decimal.Decimal `json:"previousPrice"`
	InStock       int              `json:"inStock"`
	FlashSale     *string          `json:"flashSale"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.CurrentPrice.IsNegative() || (in.PreviousPrice != nil && in.PreviousPrice.IsNegative()) {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if in.InStock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}
	return nil
}

type ProductFilter struct {
	Category        models.Category
	Search          string
	FlashSaleOnly   bool
	IncludeInactive bool
	Page
}

type CatalogService struct {
	db       *gorm.DB
	uploader ImageUploader
}

func NewCatalogService(db *gorm.DB, uploader ImageUploader) *CatalogService {
	return &CatalogService{db: db, uploader: uploader}
}

// Create adds an active product whose previous price equals its current one.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}
	product := models.Product{
		Name:          strings.TrimSpace(in.Name),
		Category:      in.Category,
		CurrentPrice:  in.CurrentPrice,
		PreviousPrice: in.CurrentPrice,
		InStock:       in.InStock,
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	log.Printf("Product %d (%s) created", product.ID, product.Name)
	return product, nil
}

// Update overwrites every editable field. The flash sale label is taken as
// given.
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}
	db := s.db.WithContext(ctx)
	product, err := s.find(db, id)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Category = in.Category
	product.CurrentPrice = in.CurrentPrice
	if in.PreviousPrice != nil {
		product.PreviousPrice = *in.PreviousPrice
	}
	product.InStock = in.InStock
	product.FlashSale = in.FlashSale

	err = db.Model(&product).Select("name", "category", "current_price", "previous_price", "in_stock", "flash_sale").Updates(&product).Error
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdatePriceAndStock changes either value or both. A price change shifts
// the old price into PreviousPrice and relabels the product.
func (s *CatalogService) UpdatePriceAndStock(ctx context.Context, id uint, newPrice *decimal.Decimal, newStock *int) (models.Product, error) {
	if newPrice != nil && newPrice.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if newStock != nil && *newStock < 0 {
		return models.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)
	product, err := s.find(db, id)
	if err != nil {
		return models.Product{}, err
	}

	if newPrice != nil && product.ChangePrice(*newPrice) {
		log.Printf("Product %d price changed from %s to %s", product.ID, product.PreviousPrice, product.CurrentPrice)
	}
	if newStock != nil {
		product.InStock = *newStock
	}

	err = db.Model(&product).Select("current_price", "previous_price", "flash_sale", "in_stock").Updates(&product).Error
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) ToggleActive(ctx context.Context, id uint) (models.Product, error) {
	db := s.db.WithContext(ctx)
	product, err := s.find(db, id)
	if err != nil {
		return models.Product{}, err
	}
	product.IsActive = !product.IsActive
	if err := db.Model(&product).Update("is_active", product.IsActive).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// AttachPicture uploads the image and stores its URL on the product.
func (s *CatalogService) AttachPicture(ctx context.Context, id uint, filename string, body io.Reader, contentType string) (models.Product, error) {
	if s.uploader == nil {
		return models.Product{}, ErrImageStorageDisabled
	}
	db := s.db.WithContext(ctx)
	product, err := s.find(db, id)
	if err != nil {
		return models.Product{}, err
	}

	key := fmt.Sprintf("products/%d/%d%s", product.ID, time.Now().UnixNano(), strings.ToLower(path.Ext(filename)))
	url, err := s.uploader.Upload(ctx, key, body, contentType)
	if err != nil {
		return models.Product{}, fmt.Errorf("uploading picture: %w", err)
	}

	product.Picture = url
	if err := db.Model(&product).Update("picture", url).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Get returns a product. Inactive products are hidden unless includeInactive
// is set.
func (s *CatalogService) Get(ctx context.Context, id uint, includeInactive bool) (models.Product, error) {
	product, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return models.Product{}, err
	}
	if !product.IsActive && !includeInactive {
		return models.Product{}, fmt.Errorf("%w: product", ErrNotFound)
	}
	return product, nil
}

func (s *CatalogService) List(ctx context.Context, filter ProductFilter) ([]models.Product, PageMetadata, error) {
	filtered := func(db *gorm.DB) *gorm.DB {
		if !filter.IncludeInactive {
			db = db.Where("is_active = ?", true)
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		if filter.FlashSaleOnly {
			db = db.Where("flash_sale IS NOT NULL AND flash_sale <> ''")
		}
		return db
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Product{}).Scopes(filtered).Count(&count).Error; err != nil {
		return nil, PageMetadata{}, err
	}

	var products []models.Product
	err := db.Scopes(filtered, filter.Page.Scope).
		Order("created_at desc").
		Order("id desc").
		Find(&products).Error
	if err != nil {
		return nil, PageMetadata{}, err
	}
	return products, newPageMetadata(filter.Page, count), nil
}

func (s *CatalogService) find(db *gorm.DB, id uint) (models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		return models.Product{}, translateDBError(err, "product")
	}
	return product, nil
}
