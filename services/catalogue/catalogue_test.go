package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"onboardu/apperror"
	"onboardu/database/dbtest"
	"onboardu/models"
	"onboardu/storage"
	"onboardu/storage/storagetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	seller = uint(1)
	other  = uint(2)
)

func newTestService(t *testing.T, policy ResubmitPolicy) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	store := storage.NewLocal(t.TempDir(), "/media/")
	return NewService(db, store, Options{Policy: policy, PageSize: 2, MaxPageSize: 5}, zap.NewNop()), db
}

func descriptor(name, category string) ProductDescriptor {
	return ProductDescriptor{
		Name:        name,
		Description: "cotton",
		Features:    json.RawMessage(`["breathable","washable"]`),
		Price:       decimal.RequireFromString("499.00"),
		Discount:    decimal.NewFromInt(10),
		FinalPrice:  decimal.RequireFromString("449.10"),
		Stock:       decimal.NewFromInt(20),
		Category:    category,
	}
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateProductsBuildsHierarchy(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)

	results, err := svc.CreateProducts(context.Background(), seller, []ProductDescriptor{
		descriptor("Classic Tee", "Apparel"),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Created)

	var catalogue models.Catalogue
	require.NoError(t, db.First(&catalogue, results[0].CatalogueID).Error)
	assert.Equal(t, "Classic", catalogue.Name, "catalogue falls back to the first word of the name")
	assert.Equal(t, results[0].CategoryID, catalogue.CategoryID)
	assert.Equal(t, seller, catalogue.CreatedByID)

	var product models.Product
	require.NoError(t, db.First(&product, results[0].ProductID).Error)
	assert.True(t, decimal.RequireFromString("499").Equal(product.Price))
	assert.JSONEq(t, `["breathable","washable"]`, string(product.Features))

	var detail models.ProductDetails
	require.NoError(t, db.First(&detail, results[0].ProductDetailID).Error)
	assert.Equal(t, 10, detail.Discount)
	assert.Equal(t, 20, detail.Stock)
	assert.True(t, detail.IsActive)
	assert.False(t, detail.Publish)
}

func TestCreateProductsReusesRowsByName(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)
	ctx := context.Background()

	tee := descriptor("Classic Tee", "Apparel")
	polo := descriptor("Classic Polo", "Apparel")
	_, err := svc.CreateProducts(ctx, seller, []ProductDescriptor{tee, polo, tee})
	require.NoError(t, err)
	_, err = svc.CreateProducts(ctx, other, []ProductDescriptor{tee})
	require.NoError(t, err)

	assert.Equal(t, int64(1), count(t, db, &models.ProductCategory{}))
	assert.Equal(t, int64(1), count(t, db, &models.Catalogue{}))
	assert.Equal(t, int64(2), count(t, db, &models.Product{}))
	assert.Equal(t, int64(3), count(t, db, &models.ProductDetails{}), "one listing per seller and product")
}

func TestCreateProductsSameNameInOtherCatalogue(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)

	a := descriptor("Tee", "Apparel")
	a.Catalogue = "Summer"
	b := descriptor("Tee", "Apparel")
	b.Catalogue = "Winter"

	results, err := svc.CreateProducts(context.Background(), seller, []ProductDescriptor{a, b})
	require.NoError(t, err)
	assert.NotEqual(t, results[0].ProductID, results[1].ProductID)
	assert.Equal(t, int64(2), count(t, db, &models.Product{}))
}

func TestCreateProductsKeepsExistingListing(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)
	ctx := context.Background()

	first, err := svc.CreateProducts(ctx, seller, []ProductDescriptor{descriptor("Classic Tee", "Apparel")})
	require.NoError(t, err)

	again := descriptor("Classic Tee", "Apparel")
	again.Stock = decimal.NewFromInt(3)
	again.Discount = decimal.NewFromInt(50)
	again.FinalPrice = decimal.RequireFromString("1.00")
	second, err := svc.CreateProducts(ctx, seller, []ProductDescriptor{again})
	require.NoError(t, err)
	assert.False(t, second[0].Created)
	assert.Equal(t, first[0].ProductDetailID, second[0].ProductDetailID)

	var detail models.ProductDetails
	require.NoError(t, db.First(&detail, first[0].ProductDetailID).Error)
	assert.Equal(t, 20, detail.Stock)
	assert.Equal(t, 10, detail.Discount)
	assert.True(t, decimal.RequireFromString("449.10").Equal(detail.FinalPrice))
}

func TestCreateProductsUpdatePolicy(t *testing.T) {
	svc, db := newTestService(t, UpdateExisting)
	ctx := context.Background()

	first, err := svc.CreateProducts(ctx, seller, []ProductDescriptor{descriptor("Classic Tee", "Apparel")})
	require.NoError(t, err)

	again := descriptor("Classic Tee", "Apparel")
	again.Stock = decimal.NewFromInt(3)
	_, err = svc.CreateProducts(ctx, seller, []ProductDescriptor{again})
	require.NoError(t, err)

	var detail models.ProductDetails
	require.NoError(t, db.First(&detail, first[0].ProductDetailID).Error)
	assert.Equal(t, 3, detail.Stock)
}

func TestCreateProductsValidatesWholeBatchFirst(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)

	bad := descriptor("", "Apparel")
	bad.Stock = decimal.RequireFromString("1.5")
	_, err := svc.CreateProducts(context.Background(), seller, []ProductDescriptor{
		descriptor("Classic Tee", "Apparel"),
		bad,
	})
	require.Error(t, err)
	appErr := apperror.As(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "products[1].name")
	assert.Contains(t, appErr.Fields, "products[1].stock")

	assert.Zero(t, count(t, db, &models.ProductCategory{}))
	assert.Zero(t, count(t, db, &models.Product{}))

	_, err = svc.CreateProducts(context.Background(), seller, nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCreateProductsRejectsOversizedQuantities(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)

	huge := descriptor("Classic Tee", "Apparel")
	huge.Stock = decimal.RequireFromString("1e20")
	huge.Discount = decimal.NewFromInt(math.MaxInt32 + 1)
	_, err := svc.CreateProducts(context.Background(), seller, []ProductDescriptor{huge})
	require.Error(t, err)
	appErr := apperror.As(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "products[0].stock")
	assert.Contains(t, appErr.Fields, "products[0].discount")
	assert.Zero(t, count(t, db, &models.ProductDetails{}))

	edge := descriptor("Classic Tee", "Apparel")
	edge.Stock = decimal.NewFromInt(math.MaxInt32)
	assert.NoError(t, validateDescriptors([]ProductDescriptor{edge}))
}

func TestDescriptorDecodesStringNumbers(t *testing.T) {
	var d ProductDescriptor
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Mug","price":"120.50","discount":"5","final_price":114.48,"stock":"7","category":"Kitchen","features":"ceramic"}`), &d))
	assert.Equal(t, "Mug", d.CatalogueName())
	assert.True(t, d.Stock.Equal(decimal.NewFromInt(7)))
	assert.NoError(t, validateDescriptors([]ProductDescriptor{d}))
	assert.JSONEq(t, `"ceramic"`, string(d.features()))
}

func createListing(t *testing.T, svc *Service, userID uint, name string) uint {
	t.Helper()
	results, err := svc.CreateProducts(context.Background(), userID, []ProductDescriptor{descriptor(name, "Apparel")})
	require.NoError(t, err)
	return results[0].ProductDetailID
}

func TestUpdateProductPartial(t *testing.T) {
	svc, _ := newTestService(t, KeepExisting)
	ctx := context.Background()
	id := createListing(t, svc, seller, "Classic Tee")

	detail, err := svc.UpdateProduct(ctx, seller, id, ProductPatch{Stock: "5"})
	require.NoError(t, err)
	assert.Equal(t, 5, detail.Stock)
	assert.Equal(t, 10, detail.Discount, "empty fields are left alone")
	assert.Equal(t, "Classic Tee", detail.Product.Name)

	detail, err = svc.UpdateProduct(ctx, seller, id, ProductPatch{Discount: "15", FinalPrice: "424.15"})
	require.NoError(t, err)
	assert.Equal(t, 5, detail.Stock)
	assert.Equal(t, 15, detail.Discount)
	assert.True(t, decimal.RequireFromString("424.15").Equal(detail.FinalPrice))

	_, err = svc.UpdateProduct(ctx, seller, id, ProductPatch{Stock: "many"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.UpdateProduct(ctx, seller, id, ProductPatch{Stock: "99999999999"})
	require.Error(t, err)
	assert.Contains(t, apperror.As(err).Fields, "stock")
}

func TestUpdateProductUnknownOrForeign(t *testing.T) {
	svc, _ := newTestService(t, KeepExisting)
	ctx := context.Background()
	id := createListing(t, svc, seller, "Classic Tee")

	_, err := svc.UpdateProduct(ctx, seller, id+100, ProductPatch{Stock: "1"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = svc.UpdateProduct(ctx, other, id, ProductPatch{Stock: "1"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestPublishProduct(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)
	ctx := context.Background()
	id := createListing(t, svc, seller, "Classic Tee")
	raw := fmt.Sprint(id)

	detail, err := svc.PublishProduct(ctx, seller, raw, "1")
	require.NoError(t, err)
	assert.True(t, detail.Publish)

	var stored models.ProductDetails
	require.NoError(t, db.First(&stored, id).Error)
	assert.True(t, stored.Publish)

	_, err = svc.PublishProduct(ctx, seller, raw, "0")
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, id).Error)
	assert.False(t, stored.Publish)

	_, err = svc.PublishProduct(ctx, seller, raw, "yes")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	require.NoError(t, db.First(&stored, id).Error)
	assert.False(t, stored.Publish)
}

func TestPublishProductErrors(t *testing.T) {
	svc, _ := newTestService(t, KeepExisting)
	ctx := context.Background()
	id := createListing(t, svc, seller, "Classic Tee")

	_, err := svc.PublishProduct(ctx, seller, "", "1")
	assert.Equal(t, "Please submit product id!", apperror.As(err).Message)

	_, err = svc.PublishProduct(ctx, seller, "abc", "1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.PublishProduct(ctx, seller, "9999", "1")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = svc.PublishProduct(ctx, other, fmt.Sprint(id), "1")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newTestService(t, KeepExisting)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, seller, "  Toys ")
	require.NoError(t, err)
	assert.Equal(t, "Toys", category.Name)
	assert.Equal(t, seller, category.CreatedByID)

	_, err = svc.CreateCategory(ctx, other, "Toys")
	require.Error(t, err)
	assert.Equal(t, "This category is already available!", apperror.As(err).Message)

	_, err = svc.CreateCategory(ctx, other, "")
	assert.Equal(t, "Please submit name to create category.", apperror.As(err).Message)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestListProductsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t, KeepExisting)
	ctx := context.Background()
	var ids []uint
	for _, name := range []string{"A Tee", "B Tee", "C Tee"} {
		ids = append(ids, createListing(t, svc, seller, name))
	}
	createListing(t, svc, other, "D Tee")

	page, err := svc.ListProducts(ctx, seller, svc.Pagination("", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Results, 2)
	assert.Equal(t, ids[2], page.Results[0].ID)
	assert.Equal(t, ids[1], page.Results[1].ID)
	assert.Equal(t, "C Tee", page.Results[0].Product.Name)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)

	page, err = svc.ListProducts(ctx, seller, svc.Pagination("2", ""))
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, ids[0], page.Results[0].ID)
	assert.Nil(t, page.Next)

	page, err = svc.ListProducts(ctx, seller, svc.Pagination("1", "50"))
	require.NoError(t, err)
	assert.Equal(t, 5, page.PageSize, "page size is capped")
	assert.Len(t, page.Results, 3)

	catalogues, err := svc.ListCatalogues(ctx)
	require.NoError(t, err)
	assert.Len(t, catalogues, 4)
}

func TestUploadImages(t *testing.T) {
	svc, db := newTestService(t, KeepExisting)
	ctx := context.Background()

	url, err := svc.UploadProductImage(ctx, seller, storagetest.FileHeader(t, "shoe.JPG", []byte("jpg")), "http://shop.test")
	require.NoError(t, err)
	assert.Regexp(t, `^http://shop\.test/media/product_images/.+\.jpg$`, url)

	url, err = svc.UploadCatalogueImage(ctx, seller, storagetest.FileHeader(t, "cat.png", []byte("png")), "http://shop.test/")
	require.NoError(t, err)
	assert.Regexp(t, `^http://shop\.test/media/catalogue_images/.+\.png$`, url)

	assert.Equal(t, int64(1), count(t, db, &models.ProductImage{}))
	assert.Equal(t, int64(1), count(t, db, &models.CatalogueImage{}))

	_, err = svc.UploadProductImage(ctx, seller, nil, "http://shop.test")
	assert.Equal(t, "Select product image to upload.", apperror.As(err).Message)
	_, err = svc.UploadCatalogueImage(ctx, seller, nil, "http://shop.test")
	assert.Equal(t, "Select catalogue image to upload.", apperror.As(err).Message)
}
