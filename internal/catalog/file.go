package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
)

var ErrUnsupportedFormat = eris.New("catalog: unsupported dataset format")

// FromFile picks a file provider by extension (.json or .xlsx).
func FromFile(path string) (Provider, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONFile{Path: path}, nil
	case ".xlsx":
		return &XLSXFile{Path: path}, nil
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// JSONFile reads a JSON array of location records.
type JSONFile struct {
	Path string
}

func (p *JSONFile) ListAllLocations(ctx context.Context) ([]Location, error) {
	locs, _, err := p.Load(ctx)
	return locs, err
}

// Load reads and normalizes the file, skipping invalid rows.
func (p *JSONFile) Load(ctx context.Context) ([]Location, LoadStats, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLoadDurationMs.WithLabelValues("json").Observe(float64(time.Since(start).Milliseconds()))
	}()

	b, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(err, "catalog: read %s", p.Path)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var rows []Record
	if err := dec.Decode(&rows); err != nil {
		return nil, LoadStats{}, eris.Wrapf(err, "catalog: parse %s (root must be a list of records)", p.Path)
	}
	locs, stats := normalizeAll(ctx, rows, p.Path)
	return locs, stats, ctx.Err()
}

// XLSXFile reads the first sheet of a workbook. The first row is the header;
// columns are matched by name, so extra columns and any order are accepted.
type XLSXFile struct {
	Path string
}

func (p *XLSXFile) ListAllLocations(ctx context.Context) ([]Location, error) {
	locs, _, err := p.Load(ctx)
	return locs, err
}

func (p *XLSXFile) Load(ctx context.Context) ([]Location, LoadStats, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLoadDurationMs.WithLabelValues("xlsx").Observe(float64(time.Since(start).Milliseconds()))
	}()

	f, err := excelize.OpenFile(p.Path)
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(err, "catalog: open %s", p.Path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, LoadStats{}, eris.Wrapf(err, "catalog: read sheet %q", sheet)
	}
	if len(rows) < 1 {
		return nil, LoadStats{}, eris.Errorf("catalog: %s has an empty sheet", p.Path)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		rec := Record{}
		for i, cell := range row {
			if i < len(header) && header[i] != "" {
				rec[header[i]] = cell
			}
		}
		records = append(records, rec)
	}
	locs, stats := normalizeAll(ctx, records, p.Path)
	return locs, stats, ctx.Err()
}

func normalizeAll(ctx context.Context, rows []Record, source string) ([]Location, LoadStats) {
	var stats LoadStats
	locs := make([]Location, 0, len(rows))
	for i, row := range rows {
		if ctx.Err() != nil {
			break
		}
		stats.Processed++
		loc, err := Normalize(row)
		if err != nil {
			stats.Skipped++
			zap.L().Warn("catalog: skipping row",
				zap.String("source", source),
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}
		locs = append(locs, loc)
	}
	zap.L().Debug("catalog: loaded",
		zap.String("source", source),
		zap.Int("processed", stats.Processed),
		zap.Int("loaded", stats.Loaded()),
		zap.Int("skipped", stats.Skipped),
	)
	return locs, stats
}
