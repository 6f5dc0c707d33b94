package handlers_test

import (
	"Catalog/config"
	"Catalog/models"
	"Catalog/routers"
	"Catalog/services"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestRouter(t *testing.T) (*gin.Engine, *services.CatalogService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	svc := services.NewCatalogService(db, nil)
	return routers.SetupRouters(svc), svc
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createCategory(t *testing.T, svc *services.CatalogService, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), services.CategoryInput{Name: &name})
	require.NoError(t, err)
	return category
}

func TestCreateProductEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	tools := createCategory(t, svc, "Tools")

	recorder := doRequest(t, router, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Widget",
		"price":         9.99,
		"stockQuantity": 5,
		"categoryIds":   []uint{tools.ID},
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Widget"`)
	assert.Contains(t, recorder.Body.String(), `"price":9.99`)

	var product models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &product))
	require.Len(t, product.Categories, 1)
	assert.Equal(t, "Tools", product.Categories[0].Name)
}

func TestCreateProductInvalidName(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/products", map[string]interface{}{
		"name":          "",
		"price":         9.99,
		"stockQuantity": 5,
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid product name"}`, recorder.Body.String())
}

func TestCreateProductInvalidPrice(t *testing.T) {
	router, _ := newTestRouter(t)

	//零值價格視同未提供
	recorder := doRequest(t, router, http.MethodPost, "/products", map[string]interface{}{
		"name":          "Widget",
		"price":         0,
		"stockQuantity": 5,
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid price"}`, recorder.Body.String())
}

func TestListProductsEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	tools := createCategory(t, svc, "Tools")
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("Widget %d", i)
		price := decimal.NewFromFloat(9.99)
		stock := i
		_, err := svc.CreateProduct(ctx, services.ProductInput{
			Name:          &name,
			Price:         &price,
			StockQuantity: &stock,
			CategoryIDs:   []uint{tools.ID},
		})
		require.NoError(t, err)
	}

	recorder := doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/products?search=wid&categoryId=%d&page=2&pageSize=5", tools.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result services.ProductList
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.EqualValues(t, 12, result.Total)
	assert.Len(t, result.Products, 5)
	for _, product := range result.Products {
		assert.Contains(t, product.Name, "Widget")
	}
}

func TestListProductsDefaultsOnGarbageParams(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	name := "Widget"
	price := decimal.NewFromFloat(9.99)
	stock := 1
	_, err := svc.CreateProduct(ctx, services.ProductInput{
		Name:          &name,
		Price:         &price,
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	//無法解析的分頁參數退回預設值
	recorder := doRequest(t, router, http.MethodGet, "/products?page=abc&pageSize=xyz", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result services.ProductList
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.EqualValues(t, 1, result.Total)
	assert.Len(t, result.Products, 1)
}

func TestUpdateProductEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	garden := createCategory(t, svc, "Garden")
	name := "Widget"
	price := decimal.NewFromFloat(9.99)
	stock := 5
	product, err := svc.CreateProduct(ctx, services.ProductInput{
		Name:          &name,
		Price:         &price,
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	recorder := doRequest(t, router, http.MethodPut, fmt.Sprintf("/products/%d", product.ID), map[string]interface{}{
		"name":          "Widget v2",
		"price":         19.99,
		"stockQuantity": 3,
		"categoryIds":   []uint{garden.ID},
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, "Widget v2", updated.Name)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, garden.ID, updated.Categories[0].ID)
}

func TestUpdateProductNotFoundEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPut, "/products/999", map[string]interface{}{
		"name":          "Widget",
		"price":         9.99,
		"stockQuantity": 5,
	})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, recorder.Body.String())
}

func TestDeleteProductEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)

	name := "Widget"
	price := decimal.NewFromFloat(9.99)
	stock := 5
	product, err := svc.CreateProduct(context.Background(), services.ProductInput{
		Name:          &name,
		Price:         &price,
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	recorder := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, recorder.Body.String())

	recorder = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, recorder.Body.String())
}

func TestCategoryEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	//新增
	recorder := doRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Tools"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var category models.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &category))
	assert.Equal(t, "Tools", category.Name)

	//列表為純陣列
	recorder = doRequest(t, router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &categories))
	require.Len(t, categories, 1)

	//修改
	recorder = doRequest(t, router, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID), map[string]string{"name": "Hardware"})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Hardware"`)

	//刪除
	recorder = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"Category deleted"}`, recorder.Body.String())

	recorder = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Category not found"}`, recorder.Body.String())
}

func TestCategoryValidationEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"Invalid category name"}`, recorder.Body.String())
}
