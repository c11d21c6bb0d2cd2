package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryPlumbing      Category = "Сантехника"
	CategoryFinishing     Category = "Отделка"
	CategoryPaints        Category = "Краски"
	CategoryLinoleum      Category = "Линолиум"
	CategoryParquet       Category = "Паркет"
	CategoryPorcelainTile Category = "Керамогранит"
	CategoryLaminate      Category = "Ламинат"
	CategoryTile          Category = "Плитка"
	CategoryWallpaper     Category = "Обои"
	CategoryCeilings      Category = "Потолки"
	CategoryDoors         Category = "Двери"
	CategoryWindows       Category = "Окна"

	// CategoryOther is assigned to remote products without a category name.
	CategoryOther Category = "other"
)

var categories = []Category{
	CategoryPlumbing, CategoryFinishing, CategoryPaints, CategoryLinoleum,
	CategoryParquet, CategoryPorcelainTile, CategoryLaminate, CategoryTile,
	CategoryWallpaper, CategoryCeilings, CategoryDoors, CategoryWindows,
}

// Categories returns the fixed set of catalog categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsKnown() bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// Product is owned by the catalog; the cart only references it.
type Product struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Price            decimal.Decimal `json:"price"`
	Brand            string          `json:"brand"`
	Available        bool            `json:"available"`
	Category         Category        `json:"category"`
	Images           []string        `json:"images"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Specs            map[string]any  `json:"specs,omitempty"`
}
