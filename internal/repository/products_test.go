package repository

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortColumn(t *testing.T) {
	assert.Equal(t, "stock_quantity", SortColumn("stockQuantity"))
	assert.Equal(t, "created_at", SortColumn(" createdAt "))
	assert.Equal(t, "price", SortColumn("PRICE"))
	assert.Equal(t, "id", SortColumn("password"))
	assert.Equal(t, "id", SortColumn(""))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "50!% off!_now!!", escapeLike("50% off_now!"))
}

func TestProductRoundTrip(t *testing.T) {
	ctx := context.Background()
	gdb := memDB(t)
	repo := NewProductRepository(gdb)

	p := domain.Product{
		Name:                    "Impact Driver",
		Price:                   decimal.RequireFromString("199.99"),
		StockQuantity:           30,
		Images:                  []string{"front.jpg", "side.jpg"},
		TechnicalSpecifications: `{"Voltage":"18 V"}`,
	}
	require.NoError(t, repo.Create(ctx, &p))

	got, found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Price.Equal(p.Price), got.Price.String())
	assert.Equal(t, []string{"front.jpg", "side.jpg"}, got.Images)
	assert.Equal(t, `{"Voltage":"18 V"}`, got.TechnicalSpecifications)
}

func TestReplaceAllWithEmptyListClearsCatalog(t *testing.T) {
	ctx := context.Background()
	gdb := memDB(t)
	fixtures(t, gdb)
	repo := NewProductRepository(gdb)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteMissingProduct(t *testing.T) {
	gdb := memDB(t)
	err := NewProductRepository(gdb).Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
