package report

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/rotisserie/eris"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/geometry"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`

	CarriagewayWidthM float64 `json:"carriageway_width_m"`
	// Geometry is the layout to report; the default layout is used when nil.
	Geometry *geometry.Triple `json:"geometry,omitempty"`
	// Location, when set, is matched against the catalog.
	Location *matcher.Query `json:"location,omitempty"`
}

// Build renders the design-basis summary. It fails with the solver or matcher
// error when the input geometry or query is invalid.
func Build(input Input, locations []catalog.Location) (*gofpdf.Fpdf, error) {
	if input.Title == "" {
		input.Title = "Design Basis Report"
	}
	overall := geometry.OverallWidth(input.CarriagewayWidthM)
	var layout geometry.Triple
	if input.Geometry == nil {
		t, err := geometry.Initialize(input.CarriagewayWidthM)
		if err != nil {
			return nil, err
		}
		layout = t
	} else {
		if err := input.Geometry.Check(overall); err != nil {
			return nil, err
		}
		layout = *input.Geometry
	}

	var (
		match   matcher.Result
		matched bool
	)
	if input.Location != nil {
		res, err := matcher.FindClosest(*input.Location, locations)
		if err != nil {
			return nil, err
		}
		match, matched = res, true
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(input.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", input.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", input.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Deck geometry")
	row(pdf, "Carriageway width", fmt.Sprintf("%.2f m", input.CarriagewayWidthM))
	row(pdf, "Overall width", fmt.Sprintf("%.2f m", overall))
	row(pdf, "Girder spacing", fmt.Sprintf("%.1f m", layout.Spacing))
	row(pdf, "Number of girders", fmt.Sprintf("%d", layout.Girders))
	row(pdf, "Deck overhang", fmt.Sprintf("%.1f m", layout.Overhang))
	pdf.Ln(6)

	if matched {
		section(pdf, "Design location")
		if !match.Found {
			pdf.Cell(0, 6, "No catalogued location available.")
			pdf.Ln(6)
		} else {
			loc := match.Location
			row(pdf, "State", tr(loc.State))
			row(pdf, "District", tr(loc.District))
			row(pdf, "Basic wind speed", fmt.Sprintf("%.1f m/s", loc.WindSpeed))
			row(pdf, "Seismic zone", loc.SeismicZone.String())
			row(pdf, "Shade air temperature", fmt.Sprintf("%.1f to %.1f deg C", loc.MinTemp, loc.MaxTemp))
			row(pdf, "Match confidence", fmt.Sprintf("%.1f %%", match.Confidence))
		}
		pdf.Ln(6)
	}

	if input.Notes != "" {
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, tr(input.Notes), "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return nil, eris.Wrap(err, "report: render")
	}
	return pdf, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(70, 7, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "1", 1, "L", false, 0, "")
}
