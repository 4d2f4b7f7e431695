package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"     // Domain models
	"storefront/internal/middleware" // Caller identity
	"storefront/internal/service"    // Catalog operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListProductsHandler returns a filtered, sorted page of products
func ListProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		minPrice, ok := decimalQuery(c, "minPrice")
		if !ok {
			badRequest(c, "Invalid minPrice")
			return
		}
		maxPrice, ok := decimalQuery(c, "maxPrice")
		if !ok {
			badRequest(c, "Invalid maxPrice")
			return
		}
		filter := domain.ProductFilter{
			Name:     c.Query("name"),     // Name substring
			Category: c.Query("category"), // Exact category
			MinPrice: minPrice,            // Inclusive lower bound
			MaxPrice: maxPrice,            // Inclusive upper bound
		}
		page, err := catalog.List(c.Request.Context(), filter, pageRequest(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetProductHandler returns one product or 404
func GetProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			badRequest(c, "Invalid product id")
			return
		}
		p, found, err := catalog.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// ProductsByCategoryHandler returns a page of products in one category
func ProductsByCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := catalog.ListByCategory(c.Request.Context(), c.Param("category"), pageRequest(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// SearchProductsHandler matches products by name substring
func SearchProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := catalog.SearchByName(c.Request.Context(), c.Query("name"), pageRequest(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// CategoriesHandler lists the distinct categories
func CategoriesHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// CountProductsHandler returns the catalog size
func CountProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := catalog.Count(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}

// principal fetches the caller or answers 401
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return p, ok
}

// CreateProductHandler adds a product to the catalog
func CreateProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var in domain.ProductInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		created, err := catalog.Create(c.Request.Context(), p, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateProductHandler replaces a product's fields
func UpdateProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "id")
		if !ok {
			badRequest(c, "Invalid product id")
			return
		}
		var in domain.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		updated, err := catalog.Update(c.Request.Context(), p, id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteProductHandler removes a product
func DeleteProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "id")
		if !ok {
			badRequest(c, "Invalid product id")
			return
		}
		if err := catalog.Delete(c.Request.Context(), p, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ReloadProductsHandler replaces the catalog from the bundled import source
func ReloadProductsHandler(catalog *service.CatalogService, src service.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		n, err := catalog.BulkImport(c.Request.Context(), p, src)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Products reloaded", "count": n})
	}
}
