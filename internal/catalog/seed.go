package catalog

import (
	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/slug"
)

// Category slugs used across the seed data.
const (
	CategoryRedWine   = "red-wine"
	CategoryBaijiu    = "baijiu"
	CategoryBeer      = "beer"
	CategorySpirits   = "spirits"
	CategoryWhisky    = "whisky"
	CategoryChampagne = "champagne"
	CategorySake      = "sake"
	CategoryVodka     = "vodka"
)

// bottleSpecGroups is the standard option set for premium bottled products:
// a volume choice and a packaging choice, each with its own price delta and
// stock ceiling.
func bottleSpecGroups() []domain.SpecGroup {
	return []domain.SpecGroup{
		{
			Name: "volume",
			Options: []domain.SpecOption{
				{Name: "500ml", PriceDelta: 0, Stock: 50},
				{Name: "750ml", PriceDelta: 50000, Stock: 30},
				{Name: "1L", PriceDelta: 80000, Stock: 20},
			},
		},
		{
			Name: "packaging",
			Options: []domain.SpecOption{
				{Name: "Single Bottle", PriceDelta: 0, Stock: 100},
				{Name: "Gift Box", PriceDelta: 20000, Stock: 25},
				{Name: "Twin Pack", PriceDelta: 30000, Stock: 15},
			},
		},
	}
}

func product(id, name, category, description string, price, originalPrice int64, stock int, rating float64, tags []string, groups []domain.SpecGroup) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Slug:          slug.Generate(name),
		Category:      category,
		Description:   description,
		Price:         price,
		OriginalPrice: originalPrice,
		Stock:         stock,
		Rating:        rating,
		Tags:          tags,
		SpecGroups:    groups,
	}
}

// SeedProducts returns the static product catalog. Amounts are minor
// currency units; stock numbers are static ceilings checked at add time,
// never decremented.
func SeedProducts() []domain.Product {
	return []domain.Product{
		product("wine-001", "Kweichow Moutai", CategoryBaijiu,
			"Flagship sauce-aroma baijiu, 53% ABV, 500ml",
			289900, 329900, 50, 4.9, []string{"bestseller", "featured"}, bottleSpecGroups()),
		product("wine-002", "Wuliangye Classic", CategoryBaijiu,
			"Strong-aroma baijiu, 52% ABV, 500ml",
			129900, 149900, 30, 4.8, []string{"bestseller"}, bottleSpecGroups()),
		product("wine-003", "Chateau Lafite Reserve", CategoryRedWine,
			"Dry red, 13.5% ABV, 750ml",
			89900, 109900, 25, 4.7, []string{"imported", "limited"}, bottleSpecGroups()),
		product("wine-004", "Pale Lager Crate", CategoryBeer,
			"Pale lager, 4.3% ABV, 330ml x 24",
			15800, 18800, 100, 4.5, []string{"crate"}, nil),
		product("wine-005", "Hennessy XO", CategorySpirits,
			"Cognac, 40% ABV, 700ml",
			188800, 218800, 15, 4.8, []string{"imported", "gift"}, bottleSpecGroups()),
		product("wine-006", "Chivas Regal 12", CategoryWhisky,
			"Blended Scotch whisky, 40% ABV, 700ml",
			68800, 78800, 20, 4.6, []string{"imported"}, bottleSpecGroups()),
		product("wine-007", "Brut Champagne", CategoryChampagne,
			"Dry champagne, 12% ABV, 750ml",
			79900, 92900, 18, 4.7, []string{"imported", "celebration"}, bottleSpecGroups()),
		product("wine-008", "Junmai Daiginjo", CategorySake,
			"Premium polished-rice sake, 16% ABV, 720ml",
			29900, 35900, 40, 4.6, []string{"imported"}, nil),
		product("wine-009", "Crystal Vodka", CategoryVodka,
			"Quadruple-distilled vodka, 40% ABV, 750ml",
			19900, 23900, 60, 4.4, nil, nil),
		product("wine-010", "Luzhou Laojiao 1573", CategoryBaijiu,
			"Strong-aroma baijiu, 52% ABV, 500ml",
			46800, 56800, 35, 4.7, []string{"bestseller"}, bottleSpecGroups()),
	}
}

// SeedCategories returns the storefront category grid.
func SeedCategories() []domain.Category {
	entries := []struct {
		slug, name, icon, description string
	}{
		{CategoryRedWine, "Red Wine", "🍷", "Curated imported reds"},
		{CategoryBaijiu, "Baijiu", "🥃", "Traditional Chinese spirits"},
		{CategoryBeer, "Beer", "🍺", "Crisp lagers and ales"},
		{CategorySpirits, "Spirits", "🥂", "Imported premium spirits"},
		{CategoryWhisky, "Whisky", "🥃", "Scotch and blends"},
		{CategoryChampagne, "Champagne", "🍾", "For celebrations"},
		{CategorySake, "Sake", "🍶", "Japanese rice wine"},
		{CategoryVodka, "Vodka", "🧊", "Clean distilled spirits"},
	}

	categories := make([]domain.Category, len(entries))
	for i, e := range entries {
		categories[i] = domain.Category{
			ID:          e.slug,
			Name:        e.name,
			Slug:        e.slug,
			Icon:        e.icon,
			Description: e.description,
		}
	}
	return categories
}

// SeedBanners returns the home-screen promotional banners.
func SeedBanners() []domain.Banner {
	return []domain.Banner{
		{ID: "banner-001", Title: "New Arrivals", Subtitle: "Fresh picks from top estates"},
		{ID: "banner-002", Title: "Member Week", Subtitle: "Extra savings on featured bottles"},
		{ID: "banner-003", Title: "Gift Sets", Subtitle: "Boxed and ready for the holidays"},
	}
}
