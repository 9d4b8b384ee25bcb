package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/geometry"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/config"
)

const sampleJSON = `[
  {"state": "Delhi", "district": "New Delhi", "wind_speed": 47, "seismic_zone": "IV", "min_temp": 2, "max_temp": 45},
  {"state": "Maharashtra", "district": "Mumbai", "wind_speed": 44, "seismic_zone": "III", "min_temp": 16, "max_temp": 38},
  {"state": "Goa", "district": "", "wind_speed": 39, "seismic_zone": "III", "min_temp": 18, "max_temp": 36}
]`

const islandsJSON = `[
  {"state": "Andaman and Nicobar Islands", "district": "South Andaman", "wind_speed": 44, "seismic_zone": "V", "min_temp": 20, "max_temp": 35}
]`

func writeData(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	primary := filepath.Join(dir, "locations.json")
	extra := filepath.Join(dir, "islands.json")
	require.NoError(t, os.WriteFile(primary, []byte(sampleJSON), 0o644))
	require.NoError(t, os.WriteFile(extra, []byte(islandsJSON), 0o644))
	return primary, extra
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"serve", "match", "geometry", "catalog"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
	assert.Equal(t, "bridge", rootCmd.Use)
}

func TestGeometryEditCommand_Flags(t *testing.T) {
	for _, name := range []string{"width", "spacing", "girders", "overhang", "field", "value"} {
		assert.NotNil(t, geometryEditCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "2.5", geometryEditCmd.Flags().Lookup("spacing").DefValue)
}

func TestRunGeometryInit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runGeometryInit(&buf, 7.5))

	var res geometry.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, geometry.Triple{Spacing: 2.5, Girders: 4, Overhang: 2.5}, res.Triple)
	assert.InDelta(t, 12.5, res.OverallWidthM, 1e-9)

	assert.ErrorIs(t, runGeometryInit(&buf, -10), geometry.ErrInvalidWidth)
}

func TestRunGeometryEdit(t *testing.T) {
	var buf bytes.Buffer
	cur := geometry.Triple{Spacing: 2.5, Girders: 4, Overhang: 2.5}
	require.NoError(t, runGeometryEdit(&buf, 7.5, cur, geometry.Edit{Field: geometry.FieldSpacing, Value: 3}))

	var res geometry.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, geometry.Triple{Spacing: 3, Girders: 3, Overhang: 3.5}, res.Triple)
}

func TestRunMatch(t *testing.T) {
	path, _ := writeData(t)
	cat, closeCatalog, err := openCatalog(context.Background(), config.CatalogConfig{Source: "json", Path: path})
	require.NoError(t, err)
	defer closeCatalog() //nolint:errcheck

	wind := 44.0
	var buf bytes.Buffer
	require.NoError(t, runMatch(context.Background(), &buf, cat, matcher.Query{WindSpeed: &wind, SeismicZone: "III"}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Mumbai", out["district"])
	assert.Equal(t, 100.0, out["confidence"])

	assert.ErrorIs(t, runMatch(context.Background(), &buf, cat, matcher.Query{}), matcher.ErrEmptyQuery)
}

func TestOpenCatalog_ExtraPaths(t *testing.T) {
	path, extra := writeData(t)
	cat, _, err := openCatalog(context.Background(), config.CatalogConfig{Source: "json", Path: path, ExtraPaths: []string{extra}})
	require.NoError(t, err)

	locs, err := cat.ListAllLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "South Andaman", locs[2].District)
	assert.Equal(t, catalog.ZoneV, locs[2].SeismicZone)
}

func TestOpenCatalog_Errors(t *testing.T) {
	_, _, err := openCatalog(context.Background(), config.CatalogConfig{Source: "json", Path: "locations.csv"})
	assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)
}

func TestCheckCatalog(t *testing.T) {
	path, extra := writeData(t)
	var buf bytes.Buffer
	require.NoError(t, checkCatalog(context.Background(), &buf, config.CatalogConfig{Source: "json", Path: path, ExtraPaths: []string{extra}}))

	var reports []sourceReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, path, reports[0].Source)
	assert.Equal(t, 3, reports[0].Processed)
	assert.Equal(t, 1, reports[0].Skipped)
	assert.Equal(t, 2, reports[0].Loaded)
	assert.Equal(t, 1, reports[1].Loaded)
}
