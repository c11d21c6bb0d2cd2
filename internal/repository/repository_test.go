package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() *domain.Cart {
	return &domain.Cart{Items: []domain.CartItem{
		{Product: domain.Product{
			ID:       "p2",
			Title:    "Paint roller set",
			Price:    decimal.NewFromInt(1490),
			Brand:    "CozyPaint",
			Category: domain.CategoryPaints,
			Images:   []string{"/img/roller.jpg"},
			Specs:    map[string]any{"width": "180 mm"},
		}, Qty: 3},
		{Product: domain.Product{ID: "p3", Title: "Faucet", Price: decimal.RequireFromString("4290.50")}, Qty: 1},
	}}
}

func assertSameCart(t *testing.T, want, got *domain.Cart) {
	t.Helper()
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Product.ID, got.Items[i].Product.ID)
		assert.Equal(t, want.Items[i].Qty, got.Items[i].Qty)
		assert.True(t, want.Items[i].Product.Price.Equal(got.Items[i].Product.Price))
	}
	assert.True(t, want.Total().Equal(got.Total()))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	data, err := encodeCart(sampleCart())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"qty":3`)
	assert.Contains(t, string(data), `"price":1490`)

	got, err := decodeCart(data)
	require.NoError(t, err)
	assertSameCart(t, sampleCart(), got)
}

func TestEncode_NilCartIsEmptyList(t *testing.T) {
	data, err := encodeCart(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := decodeCart([]byte("{not json"))
	assert.ErrorContains(t, err, "failed to decode cart")
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx, "cart:s1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	require.NoError(t, repo.Save(ctx, "cart:s1", sampleCart()))
	got, err := repo.Load(ctx, "cart:s1")
	require.NoError(t, err)
	assertSameCart(t, sampleCart(), got)
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.RunMigrations())
	// migrations are idempotent
	require.NoError(t, repo.RunMigrations())

	ctx := context.Background()
	_, err = repo.Load(ctx, "cart:s1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	require.NoError(t, repo.Save(ctx, "cart:s1", sampleCart()))
	got, err := repo.Load(ctx, "cart:s1")
	require.NoError(t, err)
	assertSameCart(t, sampleCart(), got)

	// overwrite
	require.NoError(t, repo.Save(ctx, "cart:s1", &domain.Cart{}))
	got, err = repo.Load(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestSQLiteRepository_CorruptValue(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.RunMigrations())

	_, err = repo.db.Exec(`INSERT INTO local_storage (key, value) VALUES ('cart:bad', 'garbage')`)
	require.NoError(t, err)

	_, err = repo.Load(context.Background(), "cart:bad")
	assert.ErrorContains(t, err, "failed to decode cart")
}
