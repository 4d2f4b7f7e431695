package repository

import (
	"context"
	"time"

	"storefront/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository persists cart lines through gorm
type CartRepository struct{ db *gorm.DB }

// NewCartRepository wraps db for cart line storage
func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{db: db} }

// FindByUser returns the user's cart lines with their products, oldest line first
func (r *CartRepository) FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load cart of user %d", userID)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// upsertLine inserts a (user, product) line or adds qty to the existing one in a single statement
func upsertLine(tx *gorm.DB, userID, productID uint, qty int) *gorm.DB {
	line := domain.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_items.quantity + ?", qty)},
			{Column: clause.Column{Name: "updated_at"}, Value: time.Now()},
		},
	}).Create(&line)
}

// AddQuantity merges qty into the user's line for productID, creating the line when absent
func (r *CartRepository) AddQuantity(ctx context.Context, userID, productID uint, qty int) (domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertLine(tx, userID, productID, qty).Error; err != nil {
			return errors.Wrap(err, "upsert cart line")
		}
		err := tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error
		return errors.Wrap(err, "reload cart line")
	})
	return item, err
}

// findOwned loads line id only when it belongs to userID
func findOwned(tx *gorm.DB, userID, lineID uint) (domain.CartItem, error) {
	var item domain.CartItem
	err := tx.Preload("Product").Where("id = ? AND user_id = ?", lineID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, domain.ErrCartItemNotFound
	}
	return item, errors.Wrapf(err, "load cart line %d", lineID)
}

// SetQuantity sets an owned line's quantity to qty
func (r *CartRepository) SetQuantity(ctx context.Context, userID, lineID uint, qty int) (domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = findOwned(tx, userID, lineID); err != nil {
			return err
		}
		if err := tx.Model(&item).Omit(clause.Associations).Update("quantity", qty).Error; err != nil {
			return errors.Wrapf(err, "update cart line %d", lineID)
		}
		item.Quantity = qty
		return nil
	})
	return item, err
}

// Remove deletes an owned line
func (r *CartRepository) Remove(ctx context.Context, userID, lineID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", lineID, userID).Delete(&domain.CartItem{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete cart line %d", lineID)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// Clear deletes every line of the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{})
	return res.RowsAffected, errors.Wrapf(res.Error, "clear cart of user %d", userID)
}
