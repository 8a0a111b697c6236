//go:build ignore

// Package main generates a synthetic product catalog for benchmarking.
// Usage: go run scripts/generate-catalog.go -products 10000 -output data/raw/catalog.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var (
	numProducts = flag.Int("products", 10000, "Number of products to generate")
	outputPath  = flag.String("output", "data/raw/catalog.json", "Output file")
	seed        = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var (
	nouns         = []string{"cable", "hub", "adapter", "monitor", "keyboard", "mouse", "dock", "stand", "charger", "enclosure", "switch", "router", "webcam", "headset", "microphone"}
	qualifiers    = []string{"usb", "usb-c", "hdmi", "wireless", "bluetooth", "ergonomic", "mechanical", "portable", "4k", "gigabit", "powered", "braided"}
	manufacturers = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Tyrell", "Cyberdyne"}
	categories    = []string{"Cables", "Peripherals", "Networking", "Audio", "Video", "Power"}
	stockText     = []string{"in stock", "backorder", "call for availability"}
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	products := make([]map[string]any, 0, *numProducts)
	for i := 0; i < *numProducts; i++ {
		q := qualifiers[rng.Intn(len(qualifiers))]
		n := nouns[rng.Intn(len(nouns))]
		m := manufacturers[rng.Intn(len(manufacturers))]

		p := map[string]any{
			"product_id":              i + 1,
			"product_name":            fmt.Sprintf("%s %s %s", m, q, n),
			"product_model":           fmt.Sprintf("%s-%d", m[:2], rng.Intn(9000)+1000),
			"product_mpn":             fmt.Sprintf("MPN%06d", rng.Intn(1000000)),
			"product_manufacturer":    m,
			"product_price":           float64(rng.Intn(50000)) / 100,
			"product_url":             fmt.Sprintf("https://shop.example.com/p/%d", i+1),
			"product_master_category": categories[rng.Intn(len(categories))],
			"date_added":              fmt.Sprintf("2024-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1),
			"discontinue_status":      "active",
		}

		// Mix numeric and textual stock the way real feeds do.
		if rng.Intn(4) == 0 {
			p["product_stock"] = stockText[rng.Intn(len(stockText))]
		} else {
			p["product_stock"] = rng.Intn(500)
		}

		// A few records with broken pids to exercise the skip path.
		if rng.Intn(100) == 0 {
			p["product_id"] = "n/a"
		}

		products = append(products, p)
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"products": products}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d products to %s\n", len(products), *outputPath)
}
