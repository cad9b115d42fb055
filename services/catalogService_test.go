package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/amexan-store/models"
)

type fakeUploader struct {
	key  string
	body string
}

func (u *fakeUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.key, u.body = key, string(b)
	return "https://cdn.example.com/" + key, nil
}

func TestCatalogCreateAndPriceChange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCatalogService(db, nil)

	product, err := svc.Create(ctx, ProductInput{
		Name:         "Headphones",
		Category:     models.CategoryElectronics,
		CurrentPrice: decimal.NewFromInt(100),
		InStock:      4,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.True(t, product.PreviousPrice.Equal(product.CurrentPrice))
	assert.Nil(t, product.FlashSale)

	newPrice := decimal.NewFromInt(80)
	product, err = svc.UpdatePriceAndStock(ctx, product.ID, &newPrice, nil)
	require.NoError(t, err)
	require.NotNil(t, product.FlashSale)
	assert.Equal(t, "%20 OFF", *product.FlashSale)

	stored, err := svc.Get(ctx, product.ID, false)
	require.NoError(t, err)
	assert.True(t, stored.PreviousPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, stored.CurrentPrice.Equal(decimal.NewFromInt(80)))
	require.NotNil(t, stored.FlashSale)

	higher := decimal.NewFromInt(120)
	stock := 9
	product, err = svc.UpdatePriceAndStock(ctx, product.ID, &higher, &stock)
	require.NoError(t, err)
	assert.Nil(t, product.FlashSale)
	assert.Equal(t, 9, product.InStock)

	negative := decimal.NewFromInt(-1)
	_, err = svc.UpdatePriceAndStock(ctx, product.ID, &negative, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	badStock := -3
	_, err = svc.UpdatePriceAndStock(ctx, product.ID, nil, &badStock)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, ProductInput{Name: "X", Category: "toys"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalogListingAndToggle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewCatalogService(db, nil)
	lamp := createProduct(t, db, "Desk Lamp", "40", 3, true)
	createProduct(t, db, "Floor Lamp", "90", 3, true)
	createProduct(t, db, "Old Lamp", "10", 3, false)

	products, metadata, err := svc.List(ctx, ProductFilter{Search: "lamp"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int64(2), metadata.Total)

	products, _, err = svc.List(ctx, ProductFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	products, _, err = svc.List(ctx, ProductFilter{Category: models.CategoryFashion})
	require.NoError(t, err)
	assert.Empty(t, products)

	price := decimal.NewFromInt(30)
	_, err = svc.UpdatePriceAndStock(ctx, lamp.ID, &price, nil)
	require.NoError(t, err)
	products, _, err = svc.List(ctx, ProductFilter{FlashSaleOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, lamp.ID, products[0].ID)

	toggled, err := svc.ToggleActive(ctx, lamp.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	_, err = svc.Get(ctx, lamp.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, lamp.ID, true)
	assert.NoError(t, err)
}

func TestCatalogUpdateAndPicture(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := createProduct(t, db, "Mug", "15", 3, true)

	_, err := NewCatalogService(db, nil).AttachPicture(ctx, product.ID, "mug.png", strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, ErrImageStorageDisabled)

	uploader := &fakeUploader{}
	svc := NewCatalogService(db, uploader)
	updated, err := svc.AttachPicture(ctx, product.ID, "Mug.PNG", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(uploader.key, ".png"))
	assert.Equal(t, "png", uploader.body)
	assert.Equal(t, "https://cdn.example.com/"+uploader.key, updated.Picture)

	label := "SALE"
	updated, err = svc.Update(ctx, product.ID, ProductInput{
		Name:         "Big Mug",
		Category:     models.CategoryHomeLiving,
		CurrentPrice: decimal.NewFromInt(20),
		InStock:      0,
		FlashSale:    &label,
	})
	require.NoError(t, err)
	stored, err := svc.Get(ctx, product.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", stored.Name)
	assert.Equal(t, 0, stored.InStock)
	assert.Equal(t, models.CategoryHomeLiving, stored.Category)
	assert.NotEmpty(t, stored.Picture)
	require.NotNil(t, updated.FlashSale)
}
