package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

// Subtotal is price × qty.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart keeps items in insertion order, at most one item per product id,
// every quantity >= 1.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Qty
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the item for productID and whether it exists.
func (c Cart) Find(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Clone returns a cart whose item slice can be modified independently.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{Items: []CartItem{}}
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Normalize drops invalid entries from a cart read back from storage:
// items without a product id, non-positive quantities and duplicates
// (the first occurrence wins, later quantities are merged into it).
func (c Cart) Normalize() Cart {
	out := Cart{Items: make([]CartItem, 0, len(c.Items))}
	index := make(map[string]int, len(c.Items))
	for _, item := range c.Items {
		if item.Product.ID == "" || item.Qty <= 0 {
			continue
		}
		if i, ok := index[item.Product.ID]; ok {
			out.Items[i].Qty += item.Qty
			continue
		}
		index[item.Product.ID] = len(out.Items)
		out.Items = append(out.Items, item)
	}
	return out
}
