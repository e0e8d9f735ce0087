package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type menuSeed struct {
	Name     string
	URL      string
	Parent   string
	children []menuSeed
}

type productSeed struct {
	Name          string
	Slug          string
	Type          string
	Description   string
	Price         string
	DiscountPrice string
	Category      string
	Brand         string
	Menu          string
}

// Apply inserts demo catalog data for manual testing. It is idempotent via
// ON CONFLICT, so it can run against an already-seeded database.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categoryIDs, err := upsertCategories(ctx, pool, map[string]string{
		"whisky": "Whisky",
		"gin":    "Gin",
		"wine":   "Wine",
	})
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	brandIDs, err := upsertBrands(ctx, pool, map[string]string{
		"ardbeg":  "Ardbeg",
		"hendrix": "Hendrick's",
		"ksara":   "Chateau Ksara",
	})
	if err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}

	menuIDs, err := upsertMenu(ctx, pool, []menuSeed{
		{Name: "Spirits", URL: "/collections/spirits", children: []menuSeed{
			{Name: "Whisky", URL: "/collections/whisky", Parent: "/collections/spirits"},
			{Name: "Gin", URL: "/collections/gin", Parent: "/collections/spirits"},
		}},
		{Name: "Wine", URL: "/collections/wine"},
		{Name: "Offers", URL: "/collections/offers"},
	})
	if err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Ardbeg 10 Year Old",
			Slug:        "ardbeg-10",
			Type:        "whisky",
			Description: "Peated Islay single malt",
			Price:       "54.99",
			Category:    "whisky",
			Brand:       "ardbeg",
			Menu:        "/collections/whisky",
		},
		{
			Name:          "Hendrick's Gin",
			Slug:          "hendricks-gin",
			Type:          "gin",
			Description:   "Cucumber and rose infused gin",
			Price:         "39.99",
			DiscountPrice: "32.99",
			Category:      "gin",
			Brand:         "hendrix",
			Menu:          "/collections/gin",
		},
		{
			Name:        "Chateau Ksara Reserve du Couvent",
			Slug:        "ksara-reserve-du-couvent",
			Type:        "red wine",
			Description: "Bekaa valley red blend",
			Price:       "14.99",
			Category:    "wine",
			Brand:       "ksara",
			Menu:        "/collections/wine",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p, categoryIDs, brandIDs, menuIDs); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func upsertCategories(ctx context.Context, pool *pgxpool.Pool, bySlug map[string]string) (map[string]string, error) {
	const q = `
INSERT INTO categories (slug, name)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	ids := make(map[string]string, len(bySlug))
	for slug, name := range bySlug {
		var id string
		if err := pool.QueryRow(ctx, q, slug, name).Scan(&id); err != nil {
			return nil, err
		}
		ids[slug] = id
	}
	return ids, nil
}

func upsertBrands(ctx context.Context, pool *pgxpool.Pool, bySlug map[string]string) (map[string]string, error) {
	const q = `
INSERT INTO brands (slug, name)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	ids := make(map[string]string, len(bySlug))
	for slug, name := range bySlug {
		var id string
		if err := pool.QueryRow(ctx, q, slug, name).Scan(&id); err != nil {
			return nil, err
		}
		ids[slug] = id
	}
	return ids, nil
}

// upsertMenu walks the tree depth-first so parents exist before children.
func upsertMenu(ctx context.Context, pool *pgxpool.Pool, items []menuSeed) (map[string]int64, error) {
	ids := make(map[string]int64)
	var walk func(items []menuSeed) error
	walk = func(items []menuSeed) error {
		for _, item := range items {
			var parentID *int64
			if item.Parent != "" {
				id, ok := ids[item.Parent]
				if !ok {
					return fmt.Errorf("menu item %q references unknown parent %q", item.URL, item.Parent)
				}
				parentID = &id
			}
			const q = `
INSERT INTO menu_items (name, url, parent_id)
VALUES ($1, $2, $3)
ON CONFLICT (url) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id
RETURNING id
`
			var id int64
			if err := pool.QueryRow(ctx, q, item.Name, item.URL, parentID).Scan(&id); err != nil {
				return err
			}
			ids[item.URL] = id
			if err := walk(item.children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(items); err != nil {
		return nil, err
	}
	return ids, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed, categoryIDs, brandIDs map[string]string, menuIDs map[string]int64) error {
	var discount *string
	if p.DiscountPrice != "" {
		discount = &p.DiscountPrice
	}
	var categoryID, brandID *string
	if id, ok := categoryIDs[p.Category]; ok {
		categoryID = &id
	}
	if id, ok := brandIDs[p.Brand]; ok {
		brandID = &id
	}
	var menuItemID *int64
	if id, ok := menuIDs[p.Menu]; ok {
		menuItemID = &id
	}

	const q = `
INSERT INTO products (name, slug, type, description, price, discount_price, image_url, category_id, brand_id, menu_item_id)
VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8, $9)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    type = EXCLUDED.type,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    discount_price = EXCLUDED.discount_price,
    category_id = EXCLUDED.category_id,
    brand_id = EXCLUDED.brand_id,
    menu_item_id = EXCLUDED.menu_item_id
`
	_, err := pool.Exec(ctx, q, p.Name, p.Slug, p.Type, p.Description, p.Price, discount, categoryID, brandID, menuItemID)
	return err
}
