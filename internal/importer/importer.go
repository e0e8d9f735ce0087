package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products by slug.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	Name          string
	Slug          string
	Type          string
	Desc          string
	Price         string
	DiscountPrice string
	ImageURL      string
	MenuItemID    string
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Slug == "" || row.Name == "" || row.Price == "" {
		return fmt.Errorf("invalid product row (missing required fields) for slug %q", row.Slug)
	}

	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return fmt.Errorf("invalid price for slug %q: %s", row.Slug, row.Price)
	}

	p := domain.Product{
		Name:        row.Name,
		Slug:        row.Slug,
		Type:        row.Type,
		Description: row.Desc,
		Price:       price,
		ImageURL:    row.ImageURL,
	}

	if row.DiscountPrice != "" {
		discount, err := decimal.NewFromString(row.DiscountPrice)
		if err != nil {
			return fmt.Errorf("invalid discount price for slug %q: %s", row.Slug, row.DiscountPrice)
		}
		p.DiscountPrice = &discount
	}

	if row.MenuItemID != "" {
		id, err := strconv.ParseInt(row.MenuItemID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid menu item id for slug %q: %s", row.Slug, row.MenuItemID)
		}
		p.MenuItemID = &id
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Slug, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		Name:          pick(record, index, "name"),
		Slug:          pick(record, index, "slug"),
		Type:          pick(record, index, "type"),
		Desc:          pick(record, index, "description"),
		Price:         pick(record, index, "price"),
		DiscountPrice: pick(record, index, "discount_price"),
		ImageURL:      pick(record, index, "image_url"),
		MenuItemID:    pick(record, index, "menu_item_id"),
	}
	if row.Slug == "" && row.Name == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
