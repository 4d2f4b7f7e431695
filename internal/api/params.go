package api

import (
	"strconv" // String conversion

	"storefront/internal/domain" // Paging types

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Price parsing
)

// pageRequest reads page, size, sortBy and sortDir; malformed numbers fall back to defaults
func pageRequest(c *gin.Context) domain.PageRequest {
	req := domain.PageRequest{
		SortBy:  c.DefaultQuery("sortBy", "id"),   // Sort field
		SortDir: c.DefaultQuery("sortDir", "ASC"), // Sort direction
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p >= 0 {
		req.Page = p // Zero-based page
	}
	if s, err := strconv.Atoi(c.Query("size")); err == nil && s > 0 {
		req.Size = s // Clamped to the maximum by Normalize
	}
	return req.Normalize()
}

// decimalQuery parses an optional decimal query parameter
func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// idParam parses a positive numeric path parameter
func idParam(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
