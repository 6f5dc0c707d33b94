package handlers

import (
	"Catalog/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// 查詢標籤列表
func ListCategoriesHandler(c *gin.Context, svc *services.CatalogService) {
	categories, err := svc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// 新增標籤
func CreateCategoryHandler(c *gin.Context, svc *services.CatalogService) {
	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	category, err := svc.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// 修改標籤
func UpdateCategoryHandler(c *gin.Context, svc *services.CatalogService) {
	id, err := strconv.Atoi(c.Param("categoryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category id",
		})
		return
	}

	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	category, err := svc.UpdateCategory(c.Request.Context(), uint(id), input)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// 刪除標籤
func DeleteCategoryHandler(c *gin.Context, svc *services.CatalogService) {
	id, err := strconv.Atoi(c.Param("categoryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category id",
		})
		return
	}

	if err := svc.DeleteCategory(c.Request.Context(), uint(id)); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}
