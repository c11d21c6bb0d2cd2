package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) Product {
	return Product{ID: id, Title: "product " + id, Price: decimal.NewFromInt(price), Available: true}
}

func TestApply_AddTwoProducts(t *testing.T) {
	cart := Cart{}
	cart = Apply(cart, Add{Product: product("p2", 1490)})
	cart = Apply(cart, Add{Product: product("p3", 4290)})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.ItemCount())
	assert.True(t, decimal.NewFromInt(5780).Equal(cart.Total()), "got %s", cart.Total())
}

func TestApply_AddSameProductConsolidates(t *testing.T) {
	cart := Cart{}
	for i := 0; i < 3; i++ {
		cart = Apply(cart, Add{Product: product("p2", 1490)})
	}

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].Product.ID)
	assert.Equal(t, 3, cart.Items[0].Qty)
	assert.True(t, decimal.NewFromInt(4470).Equal(cart.Total()))
}

func TestApply_DecrementLastUnitRemovesItem(t *testing.T) {
	cart := Apply(Cart{}, Add{Product: product("p2", 1490)})

	cart = Apply(cart, Decrement{ProductID: "p2"})

	assert.Empty(t, cart.Items)
	_, found := cart.Find("p2")
	assert.False(t, found)
}

func TestApply_IncrementAndRemove(t *testing.T) {
	cart := Apply(Cart{}, Add{Product: product("p2", 1490)})
	cart = Apply(cart, Add{Product: product("p4", 1290)})
	cart = Apply(cart, Increment{ProductID: "p4"})

	item, ok := cart.Find("p4")
	require.True(t, ok)
	assert.Equal(t, 2, item.Qty)

	cart = Apply(cart, Remove{ProductID: "p2"})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p4", cart.Items[0].Product.ID)
}

func TestApply_UnknownIDsAreNoOps(t *testing.T) {
	cart := Apply(Cart{}, Add{Product: product("p2", 1490)})

	for _, cmd := range []Command{Remove{ProductID: "x"}, Increment{ProductID: "x"}, Decrement{ProductID: "x"}} {
		next := Apply(cart, cmd)
		assert.Equal(t, cart.Items, next.Items, cmd.Name())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	cart := Apply(Cart{}, Add{Product: product("p2", 1490)})

	_ = Apply(cart, Increment{ProductID: "p2"})
	_ = Apply(cart, Add{Product: product("p2", 1490)})
	_ = Apply(cart, Decrement{ProductID: "p2"})

	assert.Equal(t, 1, cart.Items[0].Qty)
}

func TestApply_ClearIsIdempotent(t *testing.T) {
	cart := Apply(Cart{}, Clear{})
	assert.True(t, cart.IsEmpty())

	cart = Apply(cart, Clear{})
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

// Random command sequences must keep ids unique, quantities positive and the
// total equal to the sum of price × qty.
func TestApply_RandomSequencesKeepInvariants(t *testing.T) {
	catalog := []Product{
		product("p2", 1490),
		product("p3", 4290),
		{ID: "p9", Price: decimal.RequireFromString("199.99")},
		{ID: "p10", Price: decimal.RequireFromString("0.10")},
	}
	rnd := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		cart := Cart{}
		for step := 0; step < 200; step++ {
			p := catalog[rnd.Intn(len(catalog))]
			var cmd Command
			switch rnd.Intn(5) {
			case 0, 1:
				cmd = Add{Product: p}
			case 2:
				cmd = Increment{ProductID: p.ID}
			case 3:
				cmd = Decrement{ProductID: p.ID}
			default:
				cmd = Remove{ProductID: p.ID}
			}
			cart = Apply(cart, cmd)

			seen := map[string]bool{}
			expected := decimal.Zero
			for _, item := range cart.Items {
				require.False(t, seen[item.Product.ID], "duplicate %s", item.Product.ID)
				seen[item.Product.ID] = true
				require.GreaterOrEqual(t, item.Qty, 1)
				for i := 0; i < item.Qty; i++ {
					expected = expected.Add(item.Product.Price)
				}
			}
			require.True(t, expected.Equal(cart.Total()), "expected %s got %s", expected, cart.Total())
		}
	}
}

func TestNormalize_MergesDuplicatesAndDropsInvalid(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Product: product("p2", 1490), Qty: 1},
		{Product: product("", 10), Qty: 3},
		{Product: product("p3", 4290), Qty: 0},
		{Product: product("p2", 1490), Qty: 2},
	}}

	got := cart.Normalize()

	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Qty)
}
