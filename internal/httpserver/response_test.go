package httpserver

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestProductViewDiscountPercent(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount *decimal.Decimal
		wantPct  *int64
	}{
		{"quarter off", "100.00", dp("75.00"), pctPtr(25)},
		{"rounded up", "39.99", dp("32.99"), pctPtr(18)},
		{"no discount", "54.99", nil, nil},
		{"discount equals price", "20.00", dp("20.00"), nil},
		{"discount above price", "20.00", dp("25.00"), nil},
		{"zero price", "0.00", dp("0.00"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := toProductView(domain.Product{
				ID:            "p1",
				Name:          "Bottle",
				Slug:          "bottle",
				Price:         d(tc.price),
				DiscountPrice: tc.discount,
			})

			if tc.wantPct == nil {
				if v.DiscountPercent != nil || v.DiscountPrice != nil {
					t.Fatalf("expected list price only, got pct=%v discount=%v", v.DiscountPercent, v.DiscountPrice)
				}
				return
			}
			if v.DiscountPercent == nil || *v.DiscountPercent != *tc.wantPct {
				t.Fatalf("expected percent %d, got %v", *tc.wantPct, v.DiscountPercent)
			}
			if v.DiscountPrice == nil || !v.DiscountPrice.Equal(*tc.discount) {
				t.Fatalf("expected discount price %s, got %v", tc.discount, v.DiscountPrice)
			}
		})
	}
}

func pctPtr(n int64) *int64 {
	return &n
}

func TestListProductsRendersDiscountPercent(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{list: []domain.Product{
		{ID: "p1", Name: "Hendrick's Gin", Slug: "hendricks-gin", Price: d("39.99"), DiscountPrice: dp("32.99")},
		{ID: "p2", Name: "Ardbeg 10", Slug: "ardbeg-10", Price: d("54.99")},
	}}
	router := testRouter(t, deps)

	rec := doJSON(router, http.MethodGet, "/api/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	products := body["products"].([]interface{})
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	discounted := products[0].(map[string]interface{})
	if discounted["discountPercent"].(float64) != 18 {
		t.Fatalf("expected discountPercent 18, got %v", discounted["discountPercent"])
	}
	if discounted["discountPrice"].(string) != "32.99" {
		t.Fatalf("expected discountPrice, got %v", discounted["discountPrice"])
	}

	plain := products[1].(map[string]interface{})
	if _, ok := plain["discountPercent"]; ok {
		t.Fatal("undiscounted product must not carry discountPercent")
	}
	if _, ok := plain["discountPrice"]; ok {
		t.Fatal("undiscounted product must not carry discountPrice")
	}
}
