package importer

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
)

var (
	ErrEmptySheet    = eris.New("importer: sheet has no data rows")
	ErrNoQueryColumn = eris.New("importer: no recognised query column")
	ErrInvalidNumber = eris.New("importer: invalid number")
)

// Row is one spreadsheet line. Line is the 1-based sheet row number.
type Row struct {
	Line  int
	Query matcher.Query
	Err   error
}

var queryColumns = map[string]bool{"wind_speed": true, "seismic_zone": true, "min_temp": true, "max_temp": true}

// ReadQueries parses the first sheet of an xlsx workbook. The header row names
// the columns; blank cells are absent fields.
func ReadQueries(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, eris.Wrap(err, "importer: read rows")
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	known := 0
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if queryColumns[header[i]] {
			known++
		}
	}
	if known == 0 {
		return nil, eris.Wrapf(ErrNoQueryColumn, "header %v", rows[0])
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blankRow(rows[i]) {
			continue
		}
		q, err := parseRow(header, rows[i])
		out = append(out, Row{Line: i + 1, Query: q, Err: err})
	}
	return out, nil
}

func parseRow(header, cells []string) (matcher.Query, error) {
	var q matcher.Query
	for i, cell := range cells {
		if i >= len(header) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		switch header[i] {
		case "seismic_zone":
			q.SeismicZone = cell
		case "wind_speed", "min_temp", "max_temp":
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return matcher.Query{}, eris.Wrapf(ErrInvalidNumber, "%s %q", header[i], cell)
			}
			switch header[i] {
			case "wind_speed":
				q.WindSpeed = &v
			case "min_temp":
				q.MinTemp = &v
			default:
				q.MaxTemp = &v
			}
		}
	}
	return q, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
