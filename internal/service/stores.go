package service

import (
	"context"

	"storefront/internal/domain"
)

// ProductStore is the persistence the catalog needs
type ProductStore interface {
	FindPage(ctx context.Context, f domain.ProductFilter, req domain.PageRequest) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id uint) (domain.Product, bool, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id uint, in domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// ProductLookup is the read-only slice of the catalog the cart consults
type ProductLookup interface {
	FindByID(ctx context.Context, id uint) (domain.Product, bool, error)
}

// CartStore is the persistence the cart needs
type CartStore interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	AddQuantity(ctx context.Context, userID, productID uint, qty int) (domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, lineID uint, qty int) (domain.CartItem, error)
	Remove(ctx context.Context, userID, lineID uint) error
	Clear(ctx context.Context, userID uint) (int64, error)
}

// UserStore is the persistence auth needs
type UserStore interface {
	FindByID(ctx context.Context, id uint) (domain.User, bool, error)
	FindByUsername(ctx context.Context, username string) (domain.User, bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, u *domain.User) error
}

// UserLookup answers whether a user exists
type UserLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}
