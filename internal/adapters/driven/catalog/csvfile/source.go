// Package csvfile provides a catalog source adapter reading a delimited
// text file.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CatalogSource = (*Source)(nil)

// DefaultSeparator is the field separator used by the gift dataset.
const DefaultSeparator = ';'

// columnSynonyms maps known alternate column names onto canonical ones.
// Synonyms are resolved before validation.
var columnSynonyms = map[string]string{
	"name_of_the_product": "name",
	"product_name":        "name",
	"discounted_price":    "discount_price",
	"original_price":      "actual_price",
	"rating":              "ratings",
	"rating_count":        "no_of_ratings",
}

// requiredColumns must be structurally present after synonym resolution.
var requiredColumns = []string{
	"name", "main_category", "sub_category", "discount_price", "actual_price", "ratings",
}

// priceCleaner strips currency glyphs and thousands separators from price
// cells before numeric coercion.
var priceCleaner = strings.NewReplacer(
	"₹", "", "€", "", "$", "", "£", "",
	",", "", " ", "", " ", "",
)

// Config holds configuration for the CSV catalog source.
type Config struct {
	// Path is the location of the catalog file (required).
	Path string

	// Separator is the field separator (default ';').
	Separator rune
}

// Source loads the product catalog from a delimited text file. The file
// may be UTF-8 (with or without BOM) or Latin-1; the encodings are tried
// in that order until one applies.
type Source struct {
	path      string
	separator rune
}

// NewSource creates a CSV catalog source.
func NewSource(cfg Config) (*Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("csvfile: path is required")
	}
	sep := cfg.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}
	return &Source{path: cfg.Path, separator: sep}, nil
}

// Load reads and validates the full catalog.
//
// Policy: a single non-coercible cell (price, or an empty product name)
// rejects the whole load with domain.ErrCatalogData rather than dropping
// the row, so a catalog is either complete or not loaded at all.
func (s *Source) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogLoad, err)
	}

	text, encoding := decodeText(raw)
	logger.Debug("Catalog file decoded as %s (%d bytes)", encoding, len(raw))

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = s.separator
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %w", domain.ErrCatalogLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", domain.ErrCatalogSchema)
	}

	columns, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		item, err := parseRow(columns, record, len(items))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		items = append(items, item)
	}

	logger.Info("Catalog source: %d items from %s", len(items), s.path)
	return items, nil
}

// decodeText converts raw file bytes to a string, trying UTF-8 with BOM,
// plain UTF-8, then Latin-1. Latin-1 accepts any byte sequence, so decoding
// always succeeds.
func decodeText(raw []byte) (text, encoding string) {
	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		return string(raw[3:]), "utf-8-sig"
	}
	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Cannot happen: Latin-1 maps every byte.
		return string(raw), "utf-8"
	}
	return string(decoded), "latin-1"
}

// resolveColumns maps canonical column names to field positions after
// applying the synonym set, and validates the required columns.
func resolveColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnSynonyms[name]; ok {
			name = canonical
		}
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", domain.ErrCatalogSchema, missing)
	}
	return columns, nil
}

// parseRow converts one record into a CatalogItem.
func parseRow(columns map[string]int, record []string, id int) (domain.CatalogItem, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return domain.CatalogItem{}, fmt.Errorf("%w: empty product name", domain.ErrCatalogData)
	}

	discount, err := parsePrice(field("discount_price"))
	if err != nil {
		return domain.CatalogItem{}, err
	}
	actual, err := parsePrice(field("actual_price"))
	if err != nil {
		return domain.CatalogItem{}, err
	}
	if actual < discount {
		actual = discount
	}

	item := domain.CatalogItem{
		ID:              id,
		Name:            name,
		MainCategory:    field("main_category"),
		SubCategory:     field("sub_category"),
		GiftCategory:    field("gift_category"),
		PriceDiscounted: discount,
		PriceOriginal:   actual,
		Rating:          parseLenientFloat(field("ratings")),
		RatingCount:     int(parseLenientFloat(priceCleaner.Replace(field("no_of_ratings")))),
		RichDescription: field("rich_description"),
	}

	if item.GiftCategory == "" {
		item.GiftCategory = item.MainCategory
	}
	if item.RichDescription == "" {
		item.RichDescription = fmt.Sprintf("%s - %s - %s", item.Name, item.MainCategory, item.SubCategory)
	}
	return item, nil
}

// parsePrice cleans a currency-formatted cell and coerces it to a float.
func parsePrice(cell string) (float64, error) {
	cleaned := priceCleaner.Replace(cell)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty price cell", domain.ErrCatalogData)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q is not numeric", domain.ErrCatalogData, cell)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: negative price %q", domain.ErrCatalogData, cell)
	}
	return value, nil
}

// parseLenientFloat parses optional numeric cells. Ratings and rating
// counts are advisory, so junk degrades to zero instead of failing the load.
func parseLenientFloat(cell string) float64 {
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return value
}
