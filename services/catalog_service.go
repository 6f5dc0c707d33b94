package services

import (
	"Catalog/models"
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"log"
	"strings"
	"time"
)

const (
	categoriesCacheKey = "categories"
	categoriesCacheTTL = time.Hour
)

// CatalogService 負責輸入檢查、查詢條件組裝與多步驟寫入的協調
// rdb僅作為標籤列表快取，可為nil
type CatalogService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCatalogService(db *gorm.DB, rdb *redis.Client) *CatalogService {
	return &CatalogService{db: db, rdb: rdb}
}

// ProductInput 為新增與修改商品共用的輸入，欄位使用指標以區分「未提供」與零值
type ProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	ImageURL      *string          `json:"imageUrl"`
	CategoryIDs   []uint           `json:"categoryIds"`
}

type CategoryInput struct {
	Name *string `json:"name"`
}

type ListProductsParams struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
}

type ProductList struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

//依序檢查商品輸入資料，回傳第一個錯誤
//price為零值時視同未提供，一律回傳Invalid price
func validateProductInput(input *ProductInput) error {
	if input.Name == nil || *input.Name == "" || len(*input.Name) > 255 {
		return &ValidationError{Field: "name", Message: "Invalid product name"}
	}
	if input.Price == nil || !input.Price.IsPositive() {
		return &ValidationError{Field: "price", Message: "Invalid price"}
	}
	if input.StockQuantity == nil || *input.StockQuantity < 0 {
		return &ValidationError{Field: "stockQuantity", Message: "Invalid stock quantity"}
	}
	if input.ImageURL != nil && len(*input.ImageURL) > 255 {
		return &ValidationError{Field: "imageUrl", Message: "Invalid imageUrl"}
	}
	if input.Description != nil && len(*input.Description) > 500 {
		return &ValidationError{Field: "description", Message: "Invalid description"}
	}
	return nil
}

func validateCategoryInput(input *CategoryInput) error {
	if input.Name == nil || *input.Name == "" || len(*input.Name) > 255 {
		return &ValidationError{Field: "name", Message: "Invalid category name"}
	}
	return nil
}

// ListProducts 查詢商品列表，支援標籤過濾、名稱搜尋與分頁
// total為過濾後的總筆數，不受分頁影響；排序採用資料庫預設
func (s *CatalogService) ListProducts(ctx context.Context, params ListProductsParams) (*ProductList, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if params.CategoryID != 0 {
		query = query.Where("id IN (?)",
			s.db.Model(&models.ProductCategory{}).
				Select("product_id").
				Where("category_id = ?", params.CategoryID))
	}
	if params.Search != "" {
		//名稱搜尋不分大小寫
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	skip := (params.Page - 1) * params.PageSize
	products := make([]models.Product, 0)
	err := query.
		Preload("Categories").
		Offset(skip).
		Limit(params.PageSize).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].Categories == nil {
			products[i].Categories = make([]models.Category, 0)
		}
	}

	return &ProductList{Products: products, Total: total}, nil
}

// CreateProduct 新增商品，商品本體與標籤關聯於同一事務內建立
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:          *input.Name,
		Price:         *input.Price,
		StockQuantity: *input.StockQuantity,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(&product).Error; err != nil {
			return err
		}
		return replaceProductCategories(tx, product.ID, input.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.getProduct(ctx, product.ID)
}

// UpdateProduct 修改商品，檢查規則與新增相同
// 標籤關聯採全量替換：刪除既有關聯後依輸入重建，未提供的選填欄位維持原值
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	product.Name = *input.Name
	product.Price = *input.Price
	product.StockQuantity = *input.StockQuantity
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(&product).Error; err != nil {
			return err
		}
		return replaceProductCategories(tx, product.ID, input.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.getProduct(ctx, id)
}

// DeleteProduct 刪除商品，先刪除標籤關聯再刪除商品本體以滿足外鍵約束
// 兩步驟包在同一事務內，商品不存在時回傳ErrProductNotFound
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// ListCategories 查詢標籤列表，優先讀取快取，失敗時改由資料庫讀取
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.categoriesFromCache(ctx); ok {
		return categories, nil
	}

	categories := make([]models.Category, 0)
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}

	s.storeCategoriesCache(ctx, categories)
	return categories, nil
}

// CreateCategory 新增標籤，名稱不要求唯一
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(&input); err != nil {
		return nil, err
	}

	category := models.Category{Name: *input.Name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}

	s.invalidateCategoriesCache(ctx)
	return &category, nil
}

// UpdateCategory 修改標籤名稱，標籤不存在時回傳ErrCategoryNotFound
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(&input); err != nil {
		return nil, err
	}

	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	category.Name = *input.Name
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}

	s.invalidateCategoriesCache(ctx)
	return &category, nil
}

// DeleteCategory 刪除標籤，先刪除商品關聯再刪除標籤本體
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCategoriesCache(ctx)
	return nil
}

//全量替換商品的標籤關聯：先刪除既有關聯再依輸入重建，重複的標籤只建立一筆
func replaceProductCategories(tx *gorm.DB, productID uint, categoryIDs []uint) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}

	seen := make(map[uint]bool)
	rows := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		if seen[categoryID] {
			continue
		}
		seen[categoryID] = true
		rows = append(rows, models.ProductCategory{
			ProductID:  productID,
			CategoryID: categoryID,
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

//讀取單一商品並展開標籤
func (s *CatalogService) getProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Categories").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if product.Categories == nil {
		product.Categories = make([]models.Category, 0)
	}
	return &product, nil
}

func (s *CatalogService) categoriesFromCache(ctx context.Context) ([]models.Category, bool) {
	if s.rdb == nil {
		return nil, false
	}

	data, err := s.rdb.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (s *CatalogService) storeCategoriesCache(ctx context.Context, categories []models.Category) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, categoriesCacheKey, data, categoriesCacheTTL).Err(); err != nil {
		log.Printf("無法寫入標籤列表快取: %v\n", err)
	}
}

//標籤異動後清除快取，由下次讀取重建
func (s *CatalogService) invalidateCategoriesCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Del(ctx, categoriesCacheKey).Err(); err != nil {
		log.Printf("無法清除標籤列表快取: %v\n", err)
	}
}
