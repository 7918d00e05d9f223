package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/pages"
	"storefront-service/internal/store"
)

// RegisterRoutes mounts every storefront endpoint on api
func RegisterRoutes(api *gin.RouterGroup, st *store.Store, projector *pages.Projector, logger *logrus.Logger) {
	products := NewProductsHandler(st, logger)
	orders := NewOrdersHandler(st, logger)
	customers := NewCustomersHandler(st, logger)
	catalog := NewCatalogHandler(st, logger)
	discounts := NewDiscountsHandler(st, logger)
	sitePages := NewPagesHandler(st, projector, logger)
	settings := NewSettingsHandler(st, logger)
	insights := NewInsightsHandler(st, logger)

	p := api.Group("/products")
	{
		p.GET("", products.ListProducts)
		p.POST("", products.CreateProduct)
		p.GET("/:id", products.GetProduct)
		p.PUT("/:id", products.UpdateProduct)
		p.DELETE("/:id", products.DeleteProduct)
		p.POST("/:id/variants", products.CreateVariant)
		p.PUT("/:id/variants/:variantId", products.UpdateVariant)
		p.DELETE("/:id/variants/:variantId", products.DeleteVariant)
	}

	o := api.Group("/orders")
	{
		o.GET("", orders.ListOrders)
		o.POST("", orders.CreateOrder)
		o.GET("/:id", orders.GetOrder)
		o.PUT("/:id", orders.UpdateOrder)
		o.DELETE("/:id", orders.DeleteOrder)
		o.GET("/:id/invoice.pdf", insights.OrderInvoice)
	}

	cu := api.Group("/customers")
	{
		cu.GET("", customers.ListCustomers)
		cu.POST("", customers.CreateCustomer)
		cu.GET("/:id", customers.GetCustomer)
		cu.PUT("/:id", customers.UpdateCustomer)
		cu.DELETE("/:id", customers.DeleteCustomer)
	}

	cat := api.Group("/categories")
	{
		cat.GET("", catalog.ListCategories)
		cat.POST("", catalog.CreateCategory)
		cat.GET("/:id", catalog.GetCategory)
		cat.PUT("/:id", catalog.UpdateCategory)
		cat.DELETE("/:id", catalog.DeleteCategory)
	}

	col := api.Group("/collections")
	{
		col.GET("", catalog.ListCollections)
		col.POST("", catalog.CreateCollection)
		col.GET("/:id", catalog.GetCollection)
		col.GET("/:id/products", catalog.CollectionProducts)
		col.PUT("/:id", catalog.UpdateCollection)
		col.DELETE("/:id", catalog.DeleteCollection)
	}

	d := api.Group("/discounts")
	{
		d.GET("", discounts.ListDiscounts)
		d.POST("", discounts.CreateDiscount)
		d.POST("/redeem", discounts.RedeemDiscount)
		d.GET("/:id", discounts.GetDiscount)
		d.PUT("/:id", discounts.UpdateDiscount)
		d.DELETE("/:id", discounts.DeleteDiscount)
	}

	pg := api.Group("/pages")
	{
		pg.GET("", sitePages.ListPages)
		pg.POST("", sitePages.CreatePage)
		pg.GET("/:id", sitePages.GetPage)
		pg.PUT("/:id", sitePages.UpdatePage)
		pg.DELETE("/:id", sitePages.DeletePage)
	}
	api.GET("/site-pages", sitePages.PreviewSitePages)
	api.POST("/site-pages/generate", sitePages.GenerateSitePages)

	s := api.Group("/settings")
	{
		s.GET("/store", settings.GetStoreSettings)
		s.PUT("/store", settings.UpdateStoreSettings)
		s.GET("/payment", settings.GetPaymentSettings)
		s.PUT("/payment", settings.UpdatePaymentSettings)
	}

	api.GET("/analytics", insights.GetAnalytics)
	api.GET("/search", insights.Search)
	r := api.Group("/reports")
	{
		r.GET("/sales.xlsx", insights.SalesReport)
		r.GET("/customers.xlsx", insights.CustomersReport)
		r.GET("/inventory.xlsx", insights.InventoryReport)
	}
}
