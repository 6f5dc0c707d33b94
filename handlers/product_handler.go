package handlers

import (
	"Catalog/services"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

//將Catalog Service的錯誤對應至HTTP狀態碼
//檢查錯誤與不存在之外的持久層錯誤訊息原樣回傳給呼叫端
func respondMutationError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
		})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	}
}

// 查詢商品列表
func ListProductsHandler(c *gin.Context, svc *services.CatalogService) {
	//page與pageSize無法解析時使用預設值，不檢查上下界
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		pageSize = 10
	}

	params := services.ListProductsParams{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	if categoryID, err := strconv.Atoi(c.Query("categoryId")); err == nil && categoryID > 0 {
		params.CategoryID = uint(categoryID)
	}

	result, err := svc.ListProducts(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// 新增商品
func CreateProductHandler(c *gin.Context, svc *services.CatalogService) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	product, err := svc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// 修改商品
func UpdateProductHandler(c *gin.Context, svc *services.CatalogService) {
	id, err := strconv.Atoi(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product id",
		})
		return
	}

	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	product, err := svc.UpdateProduct(c.Request.Context(), uint(id), input)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// 刪除商品
func DeleteProductHandler(c *gin.Context, svc *services.CatalogService) {
	id, err := strconv.Atoi(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product id",
		})
		return
	}

	if err := svc.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}
