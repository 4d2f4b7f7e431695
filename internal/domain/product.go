package domain

import (
	"strings"      // String trimming
	"time"         // Timestamps
	"unicode/utf8" // Length checks in characters

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// Field limits for products
const (
	MaxNameLen             = 255
	MaxShortDescriptionLen = 500
	MaxFullDescriptionLen  = 2000
	MaxCategoryLen         = 255
	MaxImageURLLen         = 500
)

// MaxPrice is the largest price a decimal(10,2) column holds
var MaxPrice = decimal.RequireFromString("99999999.99")

// Product Model
type Product struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`                     // Primary key
	Name                    string          `gorm:"size:255;not null;index" json:"name"`      // Display name
	ShortDescription        string          `gorm:"size:500" json:"shortDescription"`         // Teaser text
	FullDescription         string          `gorm:"size:2000" json:"fullDescription"`         // Long text
	Price                   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // Unit price
	StockQuantity           int             `gorm:"not null" json:"stockQuantity"`            // Units in stock
	Category                string          `gorm:"size:255;index" json:"category"`           // Category label
	ImageURL                string          `gorm:"size:500" json:"imageUrl"`                 // Primary image
	Images                  []string        `gorm:"serializer:json;type:text" json:"images"`  // Ordered image list
	TechnicalSpecifications string          `gorm:"type:text" json:"technicalSpecifications"` // Serialized key/value specs
	CreatedAt               time.Time       `json:"createdAt"`                                // Creation time
	UpdatedAt               time.Time       `json:"updatedAt"`                                // Last update time
}

// ProductInput carries the mutable fields of a product for create and update
type ProductInput struct {
	Name                    string          `json:"name" binding:"required"`
	ShortDescription        string          `json:"shortDescription"`
	FullDescription         string          `json:"fullDescription"`
	Price                   decimal.Decimal `json:"price"`
	StockQuantity           int             `json:"stockQuantity"`
	Category                string          `json:"category"`
	ImageURL                string          `json:"imageUrl"`
	Images                  []string        `json:"images"`
	TechnicalSpecifications string          `json:"technicalSpecifications"`
}

// Validate checks field limits and trims surrounding whitespace in place
func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	switch {
	case in.Name == "":
		return Invalid("name is required")
	case utf8.RuneCountInString(in.Name) > MaxNameLen:
		return Invalid("name is too long")
	case utf8.RuneCountInString(in.ShortDescription) > MaxShortDescriptionLen:
		return Invalid("short description is too long")
	case utf8.RuneCountInString(in.FullDescription) > MaxFullDescriptionLen:
		return Invalid("full description is too long")
	case !in.Price.IsPositive():
		return Invalid("price must be greater than 0")
	case in.Price.GreaterThan(MaxPrice):
		return Invalid("price must not exceed " + MaxPrice.StringFixed(2))
	case !in.Price.Equal(in.Price.Round(2)):
		return Invalid("price must have at most 2 decimal places")
	case in.StockQuantity <= 0:
		return Invalid("stock quantity must be greater than 0")
	case utf8.RuneCountInString(in.Category) > MaxCategoryLen:
		return Invalid("category is too long")
	case utf8.RuneCountInString(in.ImageURL) > MaxImageURLLen:
		return Invalid("image url is too long")
	}
	return nil
}

// Apply copies every mutable field from the input onto p
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.ShortDescription = in.ShortDescription
	p.FullDescription = in.FullDescription
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity
	p.Category = in.Category
	p.ImageURL = in.ImageURL
	p.Images = in.Images
	p.TechnicalSpecifications = in.TechnicalSpecifications
}
