package repository

import (
	"context"
	"strings"

	"storefront/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sortColumns whitelists the orderable product columns; keys are the accepted request names.
var sortColumns = map[string]string{
	"id":             "id",
	"name":           "name",
	"price":          "price",
	"stockquantity":  "stock_quantity",
	"stock_quantity": "stock_quantity",
	"category":       "category",
	"createdat":      "created_at",
	"created_at":     "created_at",
	"updatedat":      "updated_at",
	"updated_at":     "updated_at",
}

// SortColumn resolves a requested sort field to a column, falling back to id
func SortColumn(field string) string {
	if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(field))]; ok {
		return col
	}
	return "id"
}

// ProductRepository persists products through gorm
type ProductRepository struct{ db *gorm.DB }

// NewProductRepository wraps db for catalog storage
func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

// escapeLike makes s literal inside a LIKE pattern using '!' as the escape character
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func applyFilter(q *gorm.DB, f domain.ProductFilter) *gorm.DB {
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if cat := strings.TrimSpace(f.Category); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	return q
}

// FindPage returns one page of products matching f together with the total match count
func (r *ProductRepository) FindPage(ctx context.Context, f domain.ProductFilter, req domain.PageRequest) ([]domain.Product, int64, error) {
	req = req.Normalize()
	q := applyFilter(r.db.WithContext(ctx).Model(&domain.Product{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	var rows []domain.Product
	order := SortColumn(req.SortBy) + " " + req.SortDir
	if err := q.Order(order).Order("id ASC").Offset(req.Offset()).Limit(req.Size).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "query products")
	}
	return rows, total, nil
}

// FindByID loads a product; found is false when no row has that id
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, bool, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, errors.Wrapf(err, "load product %d", id)
	}
	return p, true, nil
}

// Categories lists the distinct non-empty categories in name order
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category IS NOT NULL AND category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Create inserts p and fills in its id and timestamps
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create product")
}

// Update replaces every mutable field of product id with in
func (r *ProductRepository) Update(ctx context.Context, id uint, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}
		in.Apply(&p)
		return tx.Save(&p).Error
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Product{}, errors.Wrapf(err, "update product %d", id)
	}
	return p, err
}

// Delete removes product id and the cart lines that reference it
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "delete cart lines")
		}
		res := tx.Delete(&domain.Product{}, id)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete product %d", id)
		}
		if res.RowsAffected == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, errors.Wrap(err, "count products")
}

// ReplaceAll swaps the whole catalog for products in one transaction.
// Cart lines go with the products they reference.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Delete(&domain.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "clear cart lines")
		}
		if err := global.Delete(&domain.Product{}).Error; err != nil {
			return errors.Wrap(err, "clear products")
		}
		if len(products) == 0 {
			return nil
		}
		return errors.Wrap(tx.CreateInBatches(&products, 100).Error, "insert products")
	})
}
