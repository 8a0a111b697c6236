// Package catalog loads the raw product feed and gives typed access to
// its loosely structured records.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/store"
)

// Feed field names. The feed is flat JSON objects with these keys;
// unknown keys are ignored and any key may be absent.
const (
	FieldProductID      = "product_id"
	FieldName           = "product_name"
	FieldModel          = "product_model"
	FieldMPN            = "product_mpn"
	FieldManufacturer   = "product_manufacturer"
	FieldPrice          = "product_price"
	FieldStock          = "product_stock"
	FieldURL            = "product_url"
	FieldDateAdded      = "date_added"
	FieldDiscontinue    = "discontinue_status"
	FieldMasterCategory = "product_master_category"
	FieldImageAlt       = "product_image_alt"
)

// Record is one raw catalog entry. Values keep their JSON types
// (string, float64, bool, nil) until a typed getter coerces them.
type Record map[string]any

// wrapped is the object form of the feed.
type wrapped struct {
	Products []Record `json:"products"`
}

// Load reads catalog records from a JSON file. Both feed shapes are
// accepted: a top-level array of records, or an object with a
// "products" array.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.ConfigInvalid(
			fmt.Sprintf("cannot read catalog file: %s", path), err)
	}
	return Parse(data)
}

// Parse decodes catalog records from raw JSON bytes.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var w wrapped
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, ferrors.RecordMalformed("catalog is not valid JSON", err)
	}
	if w.Products == nil {
		return nil, ferrors.RecordMalformed(
			`catalog object has no "products" array`, nil)
	}
	return w.Products, nil
}

// String returns the record's value for key rendered as text.
// Absent and null values are empty; numbers render without a trailing
// ".0" when integral.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// PID extracts and validates the product id. Valid pids are
// non-negative integer literals: an integral JSON number, or a string
// of ASCII digits. Anything else (absent, null, negative, fractional,
// mixed text) is invalid.
func (r Record) PID() (int64, bool) {
	v, ok := r[FieldProductID]
	if !ok || v == nil {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		if x < 0 || x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case string:
		return parsePIDString(x)
	default:
		return 0, false
	}
}

func parsePIDString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Price coerces the price field to a float. Unparseable and negative
// values degrade to 0.
func (r Record) Price() float64 {
	v, ok := r[FieldPrice]
	if !ok || v == nil {
		return 0
	}
	var price float64
	switch x := v.(type) {
	case float64:
		price = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(x, "$")), 64)
		if err != nil {
			return 0
		}
		price = f
	default:
		return 0
	}
	if price < 0 {
		return 0
	}
	return price
}

// Stock coerces the stock field into the store's tagged variant:
// integral numbers become counts, everything else keeps the feed text.
func (r Record) Stock() store.Stock {
	v, ok := r[FieldStock]
	if !ok || v == nil {
		return store.NumericStock(0)
	}
	switch x := v.(type) {
	case float64:
		return store.NumericStock(int64(x))
	case string:
		return store.ParseStock(x)
	default:
		return store.NumericStock(0)
	}
}

// Document assembles the searchable projection of the record. Absent
// fields become empty strings; Extra concatenates the secondary
// descriptive fields with single spaces, omitting absent values.
func (r Record) Document() store.DocumentFields {
	var extra []string
	if v := r.String(FieldMasterCategory); v != "" {
		extra = append(extra, v)
	}
	if v := r.String(FieldImageAlt); v != "" {
		extra = append(extra, v)
	}
	return store.DocumentFields{
		Name:         r.String(FieldName),
		Model:        r.String(FieldModel),
		MPN:          r.String(FieldMPN),
		Manufacturer: r.String(FieldManufacturer),
		Extra:        strings.Join(extra, " "),
	}
}

// Metadata assembles the metadata row for the record.
func (r Record) Metadata() store.Metadata {
	return store.Metadata{
		URL:               r.String(FieldURL),
		Price:             r.Price(),
		Stock:             r.Stock(),
		DateAdded:         r.String(FieldDateAdded),
		DiscontinueStatus: r.String(FieldDiscontinue),
	}
}
