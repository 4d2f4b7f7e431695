package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/db"         // Health check
	"storefront/internal/middleware" // Auth and logging middleware
	"storefront/internal/service"    // Domain services

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Deps are the collaborators the HTTP layer is wired to
type Deps struct {
	DB           *gorm.DB                // Database handle for health checks
	Catalog      *service.CatalogService // Product operations
	Cart         *service.CartService    // Cart operations
	Auth         *service.AuthService    // Registration and login
	ImportSource service.Source          // Catalog reload source
	JWTSecret    string                  // JWT secret key
}

// HealthHandler reports whether the database answers
func HealthHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(gdb); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	}
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	r.GET("/healthz", HealthHandler(d.DB)) // Liveness endpoint

	apiGroup := r.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", RegisterHandler(d.Auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Auth))       // Login endpoint

	// Public catalog routes
	products := apiGroup.Group("/products")
	products.GET("", ListProductsHandler(d.Catalog))
	products.GET("/search", SearchProductsHandler(d.Catalog))
	products.GET("/categories", CategoriesHandler(d.Catalog))
	products.GET("/count", CountProductsHandler(d.Catalog))
	products.GET("/category/:category", ProductsByCategoryHandler(d.Catalog))
	products.GET("/:id", GetProductHandler(d.Catalog))

	// Catalog administration (protected, admin only)
	adminProducts := apiGroup.Group("/products")
	adminProducts.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Auth))
	adminProducts.POST("", CreateProductHandler(d.Catalog))
	adminProducts.PUT("/:id", UpdateProductHandler(d.Catalog))
	adminProducts.DELETE("/:id", DeleteProductHandler(d.Catalog))
	adminProducts.POST("/reload", ReloadProductsHandler(d.Catalog, d.ImportSource))

	// Cart routes (protected by JWT)
	cartGroup := apiGroup.Group("/cart")
	cartGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	cartGroup.GET("", GetCartHandler(d.Cart))
	cartGroup.POST("/add", AddToCartHandler(d.Cart))
	cartGroup.PUT("/item/:id", UpdateCartItemHandler(d.Cart))
	cartGroup.DELETE("/item/:id", RemoveCartItemHandler(d.Cart))
	cartGroup.DELETE("/clear", ClearCartHandler(d.Cart))
	cartGroup.GET("/total", CartTotalHandler(d.Cart))
	cartGroup.GET("/count", CartCountHandler(d.Cart))

	return r
}
