// Package client 為Catalog後端的型別化HTTP客戶端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/shopspring/decimal"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL 與伺服器預設監聽埠一致
const DefaultBaseURL = "http://localhost:4000"

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	Categories    []Category      `json:"categories"`
}

type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryIDs   []uint          `json:"categoryIds,omitempty"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

type ListProductsParams struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
}

// APIError 封裝伺服器回傳的狀態碼與錯誤訊息
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// NewWithHTTPClient 使用自訂的http.Client，便於設定逾時或測試
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// ListProducts 查詢商品列表，零值參數不加入查詢字串
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductList, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatUint(uint64(params.CategoryID), 10))
	}

	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result ProductList
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0)
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/categories", map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, name string) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

//送出請求並解碼回應，僅在有body時附加JSON content-type
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

//將錯誤回應正規化為APIError
//依序嘗試結構化的error與message欄位、原始內容、帶狀態碼的通用訊息，不丟失原始錯誤資訊
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		apiErr.Message = fmt.Sprintf("request failed: %d", resp.StatusCode)
		return apiErr
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
			return apiErr
		}
		if payload.Message != "" {
			apiErr.Message = payload.Message
			return apiErr
		}
	}

	apiErr.Message = string(raw)
	return apiErr
}
