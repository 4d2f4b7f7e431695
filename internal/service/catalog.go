package service

import (
	"context"
	"strings"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

// CatalogService implements product browsing and administration
type CatalogService struct {
	products ProductStore
}

// NewCatalogService builds a catalog service over products
func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// List returns a page of products matching f; an empty filter lists everything
func (s *CatalogService) List(ctx context.Context, f domain.ProductFilter, req domain.PageRequest) (domain.Page[domain.Product], error) {
	req = req.Normalize()
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return domain.Page[domain.Product]{}, domain.Invalid("minPrice must not exceed maxPrice")
	}
	rows, total, err := s.products.FindPage(ctx, f, req)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return domain.NewPage(rows, req, total), nil
}

// GetByID looks up a product; found is false when it does not exist
func (s *CatalogService) GetByID(ctx context.Context, id uint) (domain.Product, bool, error) {
	return s.products.FindByID(ctx, id)
}

// ListByCategory pages the products in one category; a blank category is invalid
func (s *CatalogService) ListByCategory(ctx context.Context, category string, req domain.PageRequest) (domain.Page[domain.Product], error) {
	if strings.TrimSpace(category) == "" {
		return domain.Page[domain.Product]{}, domain.Invalid("category is required")
	}
	return s.List(ctx, domain.ProductFilter{Category: category}, req)
}

// SearchByName pages the products whose name contains term, ignoring case
func (s *CatalogService) SearchByName(ctx context.Context, term string, req domain.PageRequest) (domain.Page[domain.Product], error) {
	return s.List(ctx, domain.ProductFilter{Name: term}, req)
}

// ListCategories returns the distinct categories in name order
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// Count returns the catalog size
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

// Create stores a new product and returns it with its assigned id
func (s *CatalogService) Create(ctx context.Context, p domain.Principal, in domain.ProductInput) (domain.Product, error) {
	if err := requireAdmin(p); err != nil {
		return domain.Product{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	var prod domain.Product
	in.Apply(&prod)
	if err := s.products.Create(ctx, &prod); err != nil {
		return domain.Product{}, err
	}
	logrus.WithFields(logrus.Fields{
		"product_id": prod.ID,
		"name":       prod.Name,
		"by":         p.Username,
	}).Info("Product created")
	return prod, nil
}

// Update replaces every mutable field of product id
func (s *CatalogService) Update(ctx context.Context, p domain.Principal, id uint, in domain.ProductInput) (domain.Product, error) {
	if err := requireAdmin(p); err != nil {
		return domain.Product{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	prod, err := s.products.Update(ctx, id, in)
	if err != nil {
		return domain.Product{}, err
	}
	logrus.WithFields(logrus.Fields{"product_id": id, "by": p.Username}).Info("Product updated")
	return prod, nil
}

// Delete removes product id together with cart lines that reference it
func (s *CatalogService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"product_id": id, "by": p.Username}).Info("Product deleted")
	return nil
}
