package importer

import (
	"context"
	"strings"
	"testing"

	"liquorhole/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,slug,type,description,price,discount_price,image_url,menu_item_id
Ardbeg 10 Year Old,ardbeg-10,whisky,Peated Islay single malt,54.99,,https://example.com/ardbeg.jpg,3
Hendrick's Gin,hendricks-gin,gin,Cucumber and rose infused,39.99,32.99,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Slug != "ardbeg-10" || first.Type != "whisky" || first.Price.String() != "54.99" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.ImageURL != "https://example.com/ardbeg.jpg" {
		t.Fatalf("expected image url preserved, got %q", first.ImageURL)
	}
	if first.MenuItemID == nil || *first.MenuItemID != 3 {
		t.Fatalf("expected menu item id 3, got %v", first.MenuItemID)
	}
	if first.DiscountPrice != nil {
		t.Fatalf("expected no discount on first product, got %v", first.DiscountPrice)
	}

	second := repo.items[1]
	if second.DiscountPrice == nil || second.DiscountPrice.String() != "32.99" {
		t.Fatalf("expected discount on second product, got %v", second.DiscountPrice)
	}
	if second.MenuItemID != nil {
		t.Fatalf("expected no menu item on second product, got %v", second.MenuItemID)
	}
}

func TestCSVImporter_SkipsBlankRows(t *testing.T) {
	csvData := `name,slug,price
Ardbeg 10,ardbeg-10,54.99
,,
`
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported, got %d", count)
	}
}

func TestCSVImporter_RejectsMissingFields(t *testing.T) {
	csvData := `name,slug,price
Nameless,,54.99`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for row without slug")
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `name,slug,price
Ardbeg 10,ardbeg-10,not-a-price`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}
