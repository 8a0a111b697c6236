package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/fruitful-search/fruitful/internal/errors"
)

func TestParse_TopLevelArray(t *testing.T) {
	records, err := Parse([]byte(`[
		{"product_id": 1, "product_name": "usb cable"},
		{"product_id": 2, "product_name": "hub"}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "usb cable", records[0].String(FieldName))
}

func TestParse_ProductsObject(t *testing.T) {
	records, err := Parse([]byte(`{"products": [{"product_id": 3}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParse_EmptyArrays(t *testing.T) {
	records, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = Parse([]byte(`{"products": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"items": []}`))
	require.Error(t, err)
	assert.True(t, ferrors.IsRecordMalformed(err))

	_, err = Parse([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, ferrors.IsRecordMalformed(err))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"product_id": "42", "product_name": "widget"}]`), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	pid, ok := records[0].PID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), pid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCode(err, ferrors.ErrCodeConfigInvalid))
}

func TestRecord_PID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   int64
		valid  bool
	}{
		{"integral number", Record{FieldProductID: float64(7)}, 7, true},
		{"digit string", Record{FieldProductID: "123"}, 123, true},
		{"zero", Record{FieldProductID: float64(0)}, 0, true},
		{"negative number", Record{FieldProductID: float64(-1)}, 0, false},
		{"fractional number", Record{FieldProductID: 1.5}, 0, false},
		{"mixed string", Record{FieldProductID: "12a"}, 0, false},
		{"signed string", Record{FieldProductID: "-5"}, 0, false},
		{"empty string", Record{FieldProductID: ""}, 0, false},
		{"null", Record{FieldProductID: nil}, 0, false},
		{"absent", Record{}, 0, false},
		{"boolean", Record{FieldProductID: true}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid, ok := tt.record.PID()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, pid)
		})
	}
}

func TestRecord_Price(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   float64
	}{
		{"number", Record{FieldPrice: 9.99}, 9.99},
		{"string", Record{FieldPrice: "12.50"}, 12.50},
		{"dollar prefix", Record{FieldPrice: "$5"}, 5},
		{"garbage", Record{FieldPrice: "call us"}, 0},
		{"negative clamps", Record{FieldPrice: -3.0}, 0},
		{"absent", Record{}, 0},
		{"null", Record{FieldPrice: nil}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Price())
		})
	}
}

func TestRecord_Stock(t *testing.T) {
	assert.Equal(t, int64(4), Record{FieldStock: float64(4)}.Stock().Coerce())
	assert.Equal(t, int64(9), Record{FieldStock: "9"}.Stock().Coerce())

	text := Record{FieldStock: "in stock"}.Stock()
	assert.False(t, text.IsNumeric())
	assert.Equal(t, "in stock", text.String())

	assert.Equal(t, int64(0), Record{}.Stock().Coerce())
}

func TestRecord_Document(t *testing.T) {
	r := Record{
		FieldName:           "usb cable",
		FieldManufacturer:   "Acme",
		FieldMasterCategory: "Cables",
		FieldImageAlt:       "black usb cable",
	}
	doc := r.Document()
	assert.Equal(t, "usb cable", doc.Name)
	assert.Equal(t, "", doc.Model)
	assert.Equal(t, "Acme", doc.Manufacturer)
	assert.Equal(t, "Cables black usb cable", doc.Extra)

	assert.Equal(t, "", Record{}.Document().Extra, "no stray separators when both absent")
	assert.Equal(t, "Cables", Record{FieldMasterCategory: "Cables"}.Document().Extra)
}

func TestRecord_Metadata(t *testing.T) {
	r := Record{
		FieldURL:         "https://shop/1",
		FieldPrice:       "19.99",
		FieldStock:       "in stock",
		FieldDateAdded:   "2024-06-01",
		FieldDiscontinue: "active",
	}
	m := r.Metadata()
	assert.Equal(t, "https://shop/1", m.URL)
	assert.Equal(t, 19.99, m.Price)
	assert.Equal(t, "in stock", m.Stock.String())
	assert.Equal(t, "2024-06-01", m.DateAdded)
	assert.Equal(t, "active", m.DiscontinueStatus)
}

func TestRecord_String(t *testing.T) {
	r := Record{
		FieldName:  "widget",
		FieldModel: float64(300),
		FieldMPN:   2.5,
		FieldURL:   nil,
	}
	assert.Equal(t, "widget", r.String(FieldName))
	assert.Equal(t, "300", r.String(FieldModel), "integral floats render without decimal")
	assert.Equal(t, "2.5", r.String(FieldMPN))
	assert.Equal(t, "", r.String(FieldURL))
	assert.Equal(t, "", r.String("missing"))
}
