package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkspace points the CLI at a temp catalog and index via env
// overrides and returns the workspace directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`[
		{"product_id": 1, "product_name": "usb cable", "product_url": "https://shop/1",
		 "product_price": 9.99, "product_stock": "in stock"},
		{"product_id": 2, "product_name": "usb hub", "product_manufacturer": "Acme"},
		{"product_name": "no pid widget"}
	]`), 0o644))

	t.Setenv("FRUITFUL_CATALOG_PATH", catalogPath)
	t.Setenv("FRUITFUL_INDEX_PATH", filepath.Join(dir, "indexes", "index.sqlite"))
	return dir
}

// runCLI executes one command invocation and returns its combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestIndexAndSearch(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "", "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 3 products")
	assert.Contains(t, out, "1 records had no valid product id")

	out, err = runCLI(t, "", "search", "usb")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 results")
	assert.Contains(t, out, "usb cable")
	assert.Contains(t, out, "usb hub")
}

func TestSearch_JSONFormat(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, "", "search", "cable", "--format", "json")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, float64(1), results[0]["pid"])
	assert.Equal(t, "in stock", results[0]["stock"])
}

func TestSearch_WithoutIndexSuggestsBuilding(t *testing.T) {
	setupWorkspace(t)

	_, err := runCLI(t, "", "search", "usb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fruitful index")
}

func TestSearch_LimitFlag(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, "", "search", "usb", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 results")
}

func TestRoot_OneShotSearch(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, "", "usb", "cable")
	require.NoError(t, err)
	assert.Contains(t, out, "usb cable")
}

func TestRoot_REPLSearchAndQuit(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, "usb\n:q\n")
	require.NoError(t, err)
	assert.Contains(t, out, "products indexed")
	assert.Contains(t, out, "usb cable")
}

func TestRoot_REPLOpenPrintsURLWhenSuppressed(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("FRUITFUL_NO_BROWSER", "1")
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, ":open 1\n:q\n")
	require.NoError(t, err)
	assert.Contains(t, out, "https://shop/1")
}

func TestRoot_REPLUnknownCommand(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, ":frobnicate\n:q\n")
	require.NoError(t, err)
	assert.Contains(t, out, "unknown command")
}

func TestOpen_NoBrowserFlag(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	out, err := runCLI(t, "", "open", "1", "--no-browser")
	require.NoError(t, err)
	assert.Contains(t, out, "https://shop/1")
}

func TestOpen_UnknownPID(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "", "index")
	require.NoError(t, err)

	_, err = runCLI(t, "", "open", "999", "--no-browser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no url known")
}

func TestOpen_InvalidPID(t *testing.T) {
	setupWorkspace(t)

	_, err := runCLI(t, "", "open", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid product id")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")

	out, err = runCLI(t, "", "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "fruitful dev")
}

func TestConfigInitAndShow(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, ".fruitful.yaml")
	assert.FileExists(t, ".fruitful.yaml")

	_, err = runCLI(t, "", "config", "init")
	require.Error(t, err, "refuses to overwrite without --force")

	_, err = runCLI(t, "", "config", "init", "--force")
	require.NoError(t, err)

	out, err = runCLI(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_limit: 10")
}

func TestIndex_MissingCatalogFails(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("FRUITFUL_CATALOG_PATH", filepath.Join(t.TempDir(), "absent.json"))

	_, err := runCLI(t, "", "index")
	assert.Error(t, err)
}
