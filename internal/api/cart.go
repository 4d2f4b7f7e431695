package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timestamps

	"storefront/internal/domain"     // Domain models
	"storefront/internal/middleware" // Context keys
	"storefront/internal/service"    // Cart operations

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money
)

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`     // Product to add
	Quantity  int  `json:"quantity" binding:"required,gt=0"` // Units to add
}

// CartItemResponse is one cart line as returned to clients
type CartItemResponse struct {
	ID                 uint            `json:"id"`                 // Cart line ID
	ProductID          uint            `json:"productId"`          // Product ID
	ProductName        string          `json:"productName"`        // Product name
	ProductDescription string          `json:"productDescription"` // Short description
	ProductPrice       decimal.Decimal `json:"productPrice"`       // Current unit price
	ProductImageURL    string          `json:"productImageUrl"`    // Primary image
	Quantity           int             `json:"quantity"`           // Units
	TotalPrice         string          `json:"totalPrice"`         // Quantity times price
	CreatedAt          time.Time       `json:"createdAt"`          // Creation time
	UpdatedAt          time.Time       `json:"updatedAt"`          // Last update time
}

func toCartItemResponse(ci domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:                 ci.ID,
		ProductID:          ci.ProductID,
		ProductName:        ci.Product.Name,
		ProductDescription: ci.Product.ShortDescription,
		ProductPrice:       ci.Product.Price,
		ProductImageURL:    ci.Product.ImageURL,
		Quantity:           ci.Quantity,
		TotalPrice:         ci.LineTotal().StringFixed(2),
		CreatedAt:          ci.CreatedAt,
		UpdatedAt:          ci.UpdatedAt,
	}
}

// userID reads the authenticated user id or answers 401
func userID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.UserIDKey) // Get userID from context
	id, ok := v.(uint)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// GetCartHandler returns the caller's cart lines
func GetCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		items, err := cart.GetCart(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]CartItemResponse, len(items))
		for i, it := range items {
			resp[i] = toCartItemResponse(it)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// AddToCartHandler adds units of a product, merging with an existing line
func AddToCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		var req AddToCartRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		item, err := cart.AddItem(c.Request.Context(), uid, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartItemResponse(item))
	}
}

// UpdateCartItemHandler sets a line's quantity from the quantity query parameter
func UpdateCartItemHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		lineID, ok := idParam(c, "id")
		if !ok {
			badRequest(c, "Invalid cart item id")
			return
		}
		qty, err := strconv.Atoi(c.Query("quantity"))
		if err != nil {
			badRequest(c, "Invalid quantity")
			return
		}
		item, err := cart.UpdateQuantity(c.Request.Context(), uid, lineID, qty)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartItemResponse(item))
	}
}

// RemoveCartItemHandler deletes one of the caller's lines
func RemoveCartItemHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		lineID, ok := idParam(c, "id")
		if !ok {
			badRequest(c, "Invalid cart item id")
			return
		}
		if err := cart.RemoveItem(c.Request.Context(), uid, lineID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ClearCartHandler empties the caller's cart
func ClearCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		if err := cart.ClearCart(c.Request.Context(), uid); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CartTotalHandler returns the cart total with two decimal places
func CartTotalHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		total, err := cart.Total(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total.StringFixed(2)})
	}
}

// CartCountHandler returns the number of units in the cart
func CartCountHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		n, err := cart.ItemCount(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}
