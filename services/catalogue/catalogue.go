// Package catalogue reconciles seller product submissions against the shared
// category, catalogue and product tables, and manages per-seller listings.
package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"onboardu/apperror"
	"onboardu/database"
	"onboardu/models"
	"onboardu/storage"
	"onboardu/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResubmitPolicy decides what CreateProducts does with a listing the seller
// already has.
type ResubmitPolicy string

const (
	// KeepExisting leaves discount, final price and stock as first submitted.
	KeepExisting ResubmitPolicy = "keep"
	// UpdateExisting overwrites them with the resubmitted values.
	UpdateExisting ResubmitPolicy = "update"
)

// maxQuantity bounds stock and discount so they fit the listing columns.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

const (
	productImageFolder   = "product_images"
	catalogueImageFolder = "catalogue_images"
)

type Options struct {
	Policy      ResubmitPolicy
	PageSize    int
	MaxPageSize int
}

type Service struct {
	db    *gorm.DB
	store storage.Storage
	opts  Options
	log   *zap.Logger
}

func NewService(db *gorm.DB, store storage.Storage, opts Options, log *zap.Logger) *Service {
	if opts.Policy == "" {
		opts.Policy = KeepExisting
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.MaxPageSize < opts.PageSize {
		opts.MaxPageSize = opts.PageSize
	}
	return &Service{db: db, store: store, opts: opts, log: log}
}

// ProductDescriptor is one product of a CreateProducts submission. Numbers
// may arrive as JSON numbers or numeric strings.
type ProductDescriptor struct {
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Features    json.RawMessage `json:"features"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	Stock       decimal.Decimal `json:"stock"`
	Catalogue   string          `json:"catalogue"`
	Category    string          `json:"category"`
}

// CatalogueName is the explicit catalogue, else the first word of the
// product name.
func (d ProductDescriptor) CatalogueName() string {
	if name := strings.TrimSpace(d.Catalogue); name != "" {
		return name
	}
	if words := strings.Fields(d.Name); len(words) > 0 {
		return words[0]
	}
	return ""
}

func (d ProductDescriptor) features() datatypes.JSON {
	raw := strings.TrimSpace(string(d.Features))
	if raw == "" || raw == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func validateDescriptors(products []ProductDescriptor) error {
	if len(products) == 0 {
		return apperror.Validation(apperror.CodeInvalid, "Submit products to create.")
	}

	fields := map[string]string{}
	for i, p := range products {
		key := func(f string) string { return fmt.Sprintf("products[%d].%s", i, f) }

		if strings.TrimSpace(p.Name) == "" {
			fields[key("name")] = "This field may not be blank."
		}
		if strings.TrimSpace(p.Category) == "" {
			fields[key("category")] = "This field may not be blank."
		}
		if p.Price.IsNegative() {
			fields[key("price")] = "Ensure this value is greater than or equal to 0."
		}
		if p.FinalPrice.IsNegative() {
			fields[key("final_price")] = "Ensure this value is greater than or equal to 0."
		}
		if !validQuantity(p.Discount) {
			fields[key("discount")] = "A valid non-negative integer is required."
		}
		if !validQuantity(p.Stock) {
			fields[key("stock")] = "A valid non-negative integer is required."
		}
		if len(p.Features) > 0 && !json.Valid(p.Features) {
			fields[key("features")] = "Value must be valid JSON."
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields("Submit valid product details.", fields)
	}
	return nil
}

func validQuantity(d decimal.Decimal) bool {
	return d.IsInteger() && !d.IsNegative() && !d.GreaterThan(maxQuantity)
}

// ProductResult reports how one descriptor was reconciled.
type ProductResult struct {
	ProductDetailID uint `json:"product_detail_id"`
	ProductID       uint `json:"product_id"`
	CatalogueID     uint `json:"catalogue_id"`
	CategoryID      uint `json:"category_id"`
	Created         bool `json:"created"`
}

// CreateProducts resolves or creates, for every descriptor, its category,
// catalogue, product and the caller's listing. Input is validated up front
// so invalid batches touch nothing. Each descriptor commits on its own; on
// failure the results of the descriptors already committed are returned with
// the error.
func (s *Service) CreateProducts(ctx context.Context, userID uint, products []ProductDescriptor) ([]ProductResult, error) {
	if err := validateDescriptors(products); err != nil {
		return nil, err
	}

	results := make([]ProductResult, 0, len(products))
	for i, p := range products {
		var res ProductResult
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			res, err = s.reconcile(tx, userID, p)
			return err
		})
		if err != nil {
			s.log.Error("create product failed", zap.Int("index", i), zap.String("name", p.Name), zap.Error(err))
			return results, apperror.Internal(fmt.Sprintf("Failed to create product %d!", i+1), err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) reconcile(tx *gorm.DB, userID uint, p ProductDescriptor) (ProductResult, error) {
	name := strings.TrimSpace(p.Name)
	categoryName := strings.TrimSpace(p.Category)
	catalogueName := p.CatalogueName()

	category, _, err := database.GetOrCreate(tx,
		&models.ProductCategory{Name: categoryName},
		&models.ProductCategory{Name: categoryName, CreatedByID: userID})
	if err != nil {
		return ProductResult{}, fmt.Errorf("category %q: %w", categoryName, err)
	}

	catalogue, _, err := database.GetOrCreate(tx,
		&models.Catalogue{Name: catalogueName},
		&models.Catalogue{Name: catalogueName, CategoryID: category.ID, CreatedByID: userID})
	if err != nil {
		return ProductResult{}, fmt.Errorf("catalogue %q: %w", catalogueName, err)
	}

	product, _, err := database.GetOrCreate(tx,
		&models.Product{Name: name, CatalogueID: catalogue.ID, CategoryID: category.ID},
		&models.Product{
			Name:        name,
			Image:       strings.TrimSpace(p.Image),
			Description: p.Description,
			Features:    p.features(),
			Price:       p.Price,
			CatalogueID: catalogue.ID,
			CategoryID:  category.ID,
		})
	if err != nil {
		return ProductResult{}, fmt.Errorf("product %q: %w", name, err)
	}

	detail, created, err := database.GetOrCreate(tx,
		&models.ProductDetails{UserID: userID, ProductID: product.ID},
		&models.ProductDetails{
			UserID:     userID,
			ProductID:  product.ID,
			Discount:   int(p.Discount.IntPart()),
			FinalPrice: p.FinalPrice,
			Stock:      int(p.Stock.IntPart()),
			IsActive:   true,
		})
	if err != nil {
		return ProductResult{}, fmt.Errorf("product details: %w", err)
	}

	if !created && s.opts.Policy == UpdateExisting {
		err := tx.Model(detail).Updates(map[string]interface{}{
			"discount":    int(p.Discount.IntPart()),
			"final_price": p.FinalPrice,
			"stock":       int(p.Stock.IntPart()),
		}).Error
		if err != nil {
			return ProductResult{}, fmt.Errorf("product details: %w", err)
		}
	}

	return ProductResult{
		ProductDetailID: detail.ID,
		ProductID:       product.ID,
		CatalogueID:     catalogue.ID,
		CategoryID:      category.ID,
		Created:         created,
	}, nil
}

// ProductPatch holds raw request values; empty strings are left untouched.
type ProductPatch struct {
	Stock      string
	Discount   string
	FinalPrice string
}

// UpdateProduct applies the supplied fields of patch to one of the caller's
// listings.
func (s *Service) UpdateProduct(ctx context.Context, userID, detailID uint, patch ProductPatch) (*models.ProductDetails, error) {
	updates := map[string]interface{}{}
	fields := map[string]string{}

	if v := strings.TrimSpace(patch.Stock); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > math.MaxInt32 {
			fields["stock"] = "A valid non-negative integer is required."
		}
		updates["stock"] = n
	}
	if v := strings.TrimSpace(patch.Discount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > math.MaxInt32 {
			fields["discount"] = "A valid non-negative integer is required."
		}
		updates["discount"] = n
	}
	if v := strings.TrimSpace(patch.FinalPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			fields["final-price"] = "A valid non-negative number is required."
		}
		updates["final_price"] = d
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationFields("Submit valid product details.", fields)
	}

	db := s.db.WithContext(ctx)
	detail, err := s.listing(db, userID, detailID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound(apperror.CodeInvalid, "Product does not exist. Try creating this product")
		}
		return nil, err
	}

	if len(updates) > 0 {
		if err := db.Model(detail).Updates(updates).Error; err != nil {
			return nil, apperror.Internal("Failed to update product!", err)
		}
	}
	return s.listing(db, userID, detailID)
}

// PublishProduct sets the publish flag of one of the caller's listings.
// publish must be an integer; any non-zero value publishes.
func (s *Service) PublishProduct(ctx context.Context, userID uint, detailID, publish string) (*models.ProductDetails, error) {
	detailID = strings.TrimSpace(detailID)
	if detailID == "" {
		return nil, apperror.Validation(apperror.CodeFailed, "Please submit product id!")
	}
	id, err := strconv.ParseUint(detailID, 10, 64)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeFailed, "Please submit correct product id!")
	}
	flag, err := strconv.Atoi(strings.TrimSpace(publish))
	if err != nil {
		return nil, apperror.Validation(apperror.CodeFailed, "Submit publish in 0 or 1.")
	}

	db := s.db.WithContext(ctx)
	detail, err := s.listing(db, userID, uint(id))
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound(apperror.CodeFailed, "Please submit correct product id!")
		}
		return nil, err
	}

	if err := db.Model(detail).Update("publish", flag != 0).Error; err != nil {
		return nil, apperror.Internal("Failed to publish product!", err)
	}
	detail.Publish = flag != 0
	return detail, nil
}

func (s *Service) listing(db *gorm.DB, userID, detailID uint) (*models.ProductDetails, error) {
	var detail models.ProductDetails
	err := db.Preload("Product").Where("id = ? AND user_id = ?", detailID, userID).First(&detail).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeInvalid, "Product not found.")
		}
		return nil, apperror.Internal("Failed to retrieve product!", err)
	}
	return &detail, nil
}

// CreateCategory creates a category with a unique name.
func (s *Service) CreateCategory(ctx context.Context, userID uint, name string) (*models.ProductCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation(apperror.CodeInvalid, "Please submit name to create category.")
	}
	duplicate := apperror.Validation(apperror.CodeInvalid, "This category is already available!")

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.ProductCategory{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperror.Internal("Failed to create category!", err)
	}
	if count > 0 {
		return nil, duplicate
	}

	category := models.ProductCategory{Name: name, CreatedByID: userID}
	if err := db.Create(&category).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, duplicate
		}
		return nil, apperror.Internal("Failed to create category!", err)
	}
	return &category, nil
}

// ProductPage is one page of a seller's listings, newest first.
type ProductPage struct {
	utils.Meta
	Results []models.ProductDetails `json:"results"`
}

// Pagination builds the page request for ListProducts from raw query values.
func (s *Service) Pagination(page, pageSize string) utils.Pagination {
	return utils.NewPagination(page, pageSize, s.opts.PageSize, s.opts.MaxPageSize)
}

func (s *Service) ListProducts(ctx context.Context, userID uint, p utils.Pagination) (*ProductPage, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.ProductDetails{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperror.Internal("Failed to retrieve products!", err)
	}

	results := []models.ProductDetails{}
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&results).Error
	if err != nil {
		return nil, apperror.Internal("Failed to retrieve products!", err)
	}
	return &ProductPage{Meta: p.Meta(total), Results: results}, nil
}

func (s *Service) ListCatalogues(ctx context.Context) ([]models.Catalogue, error) {
	catalogues := []models.Catalogue{}
	if err := s.db.WithContext(ctx).Order("id").Find(&catalogues).Error; err != nil {
		return nil, apperror.Internal("Failed to retrieve catalogues!", err)
	}
	return catalogues, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	categories := []models.ProductCategory{}
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, apperror.Internal("Failed to retrieve categories!", err)
	}
	return categories, nil
}

// UploadProductImage stores an image for the caller and returns its public
// URL.
func (s *Service) UploadProductImage(ctx context.Context, userID uint, file *multipart.FileHeader, baseURL string) (string, error) {
	if file == nil {
		return "", apperror.Validation(apperror.CodeFailed, "Select product image to upload.")
	}
	path, err := s.store.Save(ctx, file, productImageFolder)
	if err != nil {
		return "", apperror.Internal("Failed to upload image!", err)
	}
	if err := s.db.WithContext(ctx).Create(&models.ProductImage{UserID: userID, Image: path}).Error; err != nil {
		return "", apperror.Internal("Failed to upload image!", err)
	}
	return s.store.URL(baseURL, path), nil
}

func (s *Service) UploadCatalogueImage(ctx context.Context, userID uint, file *multipart.FileHeader, baseURL string) (string, error) {
	if file == nil {
		return "", apperror.Validation(apperror.CodeFailed, "Select catalogue image to upload.")
	}
	path, err := s.store.Save(ctx, file, catalogueImageFolder)
	if err != nil {
		return "", apperror.Internal("Failed to upload image!", err)
	}
	if err := s.db.WithContext(ctx).Create(&models.CatalogueImage{UserID: userID, File: path}).Error; err != nil {
		return "", apperror.Internal("Failed to upload image!", err)
	}
	return s.store.URL(baseURL, path), nil
}

