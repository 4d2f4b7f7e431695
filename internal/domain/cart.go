package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// CartItem Model: one line per (user, product)
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                         // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"userId"`     // Owning user
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"productId"`  // Referenced product
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"` // Product snapshot at read time
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // Units in the cart
	CreatedAt time.Time `json:"createdAt"`                                                    // Creation time
	UpdatedAt time.Time `json:"updatedAt"`                                                    // Last update time
}

// LineTotal is quantity times the product's current price
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CartTotal sums the line totals of items
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// CartCount sums the quantities of items
func CartCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
