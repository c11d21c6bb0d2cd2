package catalog

import (
	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func fixture(id, title string, price int64, brand string, available bool, category domain.Category, image, short string, specs map[string]any) domain.Product {
	return domain.Product{
		ID:               id,
		Title:            title,
		Price:            decimal.NewFromInt(price),
		Brand:            brand,
		Available:        available,
		Category:         category,
		Images:           []string{"/images/" + image + ".jpg", "/images/" + image + "-2.jpg"},
		ShortDescription: short,
		Description:      short,
		Specs:            specs,
	}
}

// DefaultProducts is the product set bundled with the storefront.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		fixture("p2", "Набор валиков для покраски", 1490, "CozyPaint", true, domain.CategoryPaints,
			"product-roller", "Чистая и ровная покраска без усилий",
			map[string]any{"Материал": "микрофибра", "Ширина": "180 мм", "Комплект": "5 предметов"}),
		fixture("p3", "Смеситель для раковины хром", 4290, "AquaCozy", false, domain.CategoryPlumbing,
			"product-faucet", "Современный дизайн и долговечность",
			map[string]any{"Материал": "латунь", "Покрытие": "хром", "Гарантия": "3 года"}),
		fixture("p4", "Ламинат дуб натуральный 32 класс", 1290, "QuickStep", true, domain.CategoryLaminate,
			"product-tiles-1", "Влагостойкий ламинат с фаской",
			map[string]any{"Класс": 32, "Толщина": "8 мм"}),
		fixture("p5", "Керамическая плитка \"Мрамор\" 30x30", 1290, "TilePro", true, domain.CategoryFinishing,
			"product-tiles-1", "Классика мрамора для ванной и кухни", nil),
		fixture("p6", "Обои виниловые на флизелиновой основе", 1890, "Erismann", true, domain.CategoryWallpaper,
			"product-wallpaper", "Плотные моющиеся обои под покраску", nil),
		fixture("p7", "Натяжной потолок матовый", 2990, "Barrisol", true, domain.CategoryCeilings,
			"product-ceiling", "Ровный потолок за один день", nil),
		fixture("p8", "Штукатурка гипсовая 30 кг", 549, "WhiteWall", true, domain.CategoryFinishing,
			"product-sacks-1", "Для выравнивания стен и потолков",
			map[string]any{"Вес": "30 кг"}),
		fixture("p9", "Шпаклёвка финишная 20 кг", 629, "FinishPro", true, domain.CategoryFinishing,
			"product-bucket-1", "Гладкая поверхность под покраску",
			map[string]any{"Вес": "20 кг"}),
		fixture("p10", "Керамогранит 60x60 \"Графит\"", 1890, "TilePro", true, domain.CategoryFinishing,
			"product-tiles-1", "Износостойкий керамогранит", nil),
		fixture("p11", "Плитка керамическая \"Метро\" 10x20", 890, "Golden Tile", true, domain.CategoryTile,
			"product-tiles-1", "Популярный формат для фартука", nil),
		fixture("p12", "Дверь межкомнатная экошпон", 8900, "Profil Doors", true, domain.CategoryDoors,
			"product-door", "Лёгкая дверь с фурнитурой", nil),
		fixture("p13", "Окно ПВХ двухстворчатое", 15900, "Rehau", true, domain.CategoryWindows,
			"product-window", "Тёплое окно с поворотно-откидной створкой", nil),
		fixture("p14", "Паркетная доска дуб селект", 3290, "Barlinek", true, domain.CategoryParquet,
			"product-parquet", "Натуральное дерево под лаком", nil),
		fixture("p15", "Керамогранит под дерево 15x60", 1690, "Estima", true, domain.CategoryPorcelainTile,
			"product-tiles-1", "Фактура дерева без ухода за деревом", nil),
		fixture("p16", "Линолеум коммерческий гетерогенный", 2490, "Tarkett", true, domain.CategoryLinoleum,
			"product-linoleum", "Для помещений с высокой проходимостью", nil),
	}
}
