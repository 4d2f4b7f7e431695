package service

import (
	"context"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartService manages per-user carts. Line quantities are merged at the store in one atomic statement.
type CartService struct {
	carts    CartStore
	products ProductLookup
	users    UserLookup
}

// NewCartService builds a cart service over the given stores
func NewCartService(carts CartStore, products ProductLookup, users UserLookup) *CartService {
	return &CartService{carts: carts, products: products, users: users}
}

func (s *CartService) requireUser(ctx context.Context, userID uint) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetCart returns the user's lines in the order they were first added
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.carts.FindByUser(ctx, userID)
}

// AddItem adds qty units of productID, merging into an existing line for the same product
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, qty int) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return domain.CartItem{}, err
	}
	_, found, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !found {
		return domain.CartItem{}, domain.ErrProductNotFound
	}
	item, err := s.carts.AddQuantity(ctx, userID, productID, qty)
	if err != nil {
		return domain.CartItem{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
		"added":      qty,
		"quantity":   item.Quantity,
	}).Info("Cart item added")
	return item, nil
}

// UpdateQuantity sets an owned line to qty
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uint, qty int) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}
	item, err := s.carts.SetQuantity(ctx, userID, lineID, qty)
	if err != nil {
		return domain.CartItem{}, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": lineID, "quantity": qty}).Info("Cart item updated")
	return item, nil
}

// RemoveItem deletes an owned line
func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uint) error {
	if err := s.carts.Remove(ctx, userID, lineID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": lineID}).Info("Cart item removed")
	return nil
}

// ClearCart empties the user's cart; an empty cart is left as is
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	n, err := s.carts.Clear(ctx, userID)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "removed": n}).Info("Cart cleared")
	return nil
}

// Total is the exact sum of quantity times current price over the cart
func (s *CartService) Total(ctx context.Context, userID uint) (decimal.Decimal, error) {
	items, err := s.GetCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.CartTotal(items), nil
}

// ItemCount is the number of units in the cart
func (s *CartService) ItemCount(ctx context.Context, userID uint) (int, error) {
	items, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.CartCount(items), nil
}
