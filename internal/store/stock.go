package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stock is a tagged variant: either a numeric count or opaque feed text.
// Many feeds report stock as qualitative strings like "in stock"; those
// are preserved verbatim instead of being zeroed.
type Stock struct {
	n       int64
	text    string
	numeric bool
}

// NumericStock returns a Stock holding an integer count.
func NumericStock(n int64) Stock {
	return Stock{n: n, numeric: true}
}

// TextStock returns a Stock holding opaque feed text.
func TextStock(s string) Stock {
	return Stock{text: s}
}

// ParseStock coerces feed text into a Stock. Integer parse first, then
// float-with-truncation; anything else keeps the original string.
func ParseStock(s string) Stock {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return NumericStock(n)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumericStock(int64(f))
	}
	return TextStock(s)
}

// StockFromValue coerces a database value into a Stock.
// SQLite columns are dynamically typed, so the driver may hand back
// integers, floats, text, or NULL for the same column.
func StockFromValue(v any) Stock {
	switch x := v.(type) {
	case nil:
		return NumericStock(0)
	case int64:
		return NumericStock(x)
	case float64:
		return NumericStock(int64(x))
	case []byte:
		return ParseStock(string(x))
	case string:
		return ParseStock(x)
	default:
		return NumericStock(0)
	}
}

// IsNumeric reports whether the stock value is a numeric count.
func (s Stock) IsNumeric() bool {
	return s.numeric
}

// Int returns the numeric count when present.
func (s Stock) Int() (int64, bool) {
	return s.n, s.numeric
}

// Coerce returns the numeric count, or 0 as a last resort when the
// caller requires an integer for non-numeric text.
func (s Stock) Coerce() int64 {
	if s.numeric {
		return s.n
	}
	return 0
}

// String renders the stock for display.
func (s Stock) String() string {
	if s.numeric {
		return strconv.FormatInt(s.n, 10)
	}
	return s.text
}

// Value returns the driver-level representation: int64 when numeric,
// the original text otherwise.
func (s Stock) Value() any {
	if s.numeric {
		return s.n
	}
	return s.text
}

// MarshalJSON emits a JSON number for numeric stock and a string otherwise.
func (s Stock) MarshalJSON() ([]byte, error) {
	if s.numeric {
		return json.Marshal(s.n)
	}
	return json.Marshal(s.text)
}

// UnmarshalJSON accepts either a JSON number or a string.
func (s *Stock) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = NumericStock(n)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = ParseStock(text)
	return nil
}
