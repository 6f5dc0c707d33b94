package routers

import (
	"Catalog/handlers"
	"Catalog/services"
	"github.com/gin-gonic/gin"
	"net/http"
)

func SetupRouters(svc *services.CatalogService) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	//查詢商品列表
	router.GET("/products", func(context *gin.Context) {
		handlers.ListProductsHandler(context, svc)
	})
	//新增商品
	router.POST("/products", func(context *gin.Context) {
		handlers.CreateProductHandler(context, svc)
	})
	//修改商品
	router.PUT("/products/:productID", func(context *gin.Context) {
		handlers.UpdateProductHandler(context, svc)
	})
	//刪除商品
	router.DELETE("/products/:productID", func(context *gin.Context) {
		handlers.DeleteProductHandler(context, svc)
	})
	//查詢標籤列表
	router.GET("/categories", func(context *gin.Context) {
		handlers.ListCategoriesHandler(context, svc)
	})
	//新增標籤
	router.POST("/categories", func(context *gin.Context) {
		handlers.CreateCategoryHandler(context, svc)
	})
	//修改標籤
	router.PUT("/categories/:categoryID", func(context *gin.Context) {
		handlers.UpdateCategoryHandler(context, svc)
	})
	//刪除標籤
	router.DELETE("/categories/:categoryID", func(context *gin.Context) {
		handlers.DeleteCategoryHandler(context, svc)
	})

	return router
}
