package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidRecord = eris.New("catalog: invalid record")

// Record is one raw dataset row keyed by column name.
type Record map[string]any

var requiredFields = []string{"state", "district", "wind_speed", "seismic_zone", "min_temp", "max_temp"}

// LoadStats counts rows seen and rows dropped while building a snapshot.
type LoadStats struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

func (s LoadStats) Loaded() int { return s.Processed - s.Skipped }

// Normalize validates a raw row and converts it into a Location.
// Names are whitespace-collapsed and title-cased; min_temp must not exceed max_temp.
func Normalize(r Record) (Location, error) {
	var missing []string
	for _, f := range requiredFields {
		if isBlank(r[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Location{}, eris.Wrapf(ErrInvalidRecord, "missing required fields: %s", strings.Join(missing, ", "))
	}

	var (
		loc Location
		err error
	)
	if loc.State, err = normalizeName(r["state"]); err != nil {
		return Location{}, err
	}
	if loc.District, err = normalizeName(r["district"]); err != nil {
		return Location{}, err
	}
	if loc.WindSpeed, err = toFloat(r["wind_speed"], "wind_speed"); err != nil {
		return Location{}, err
	}
	zone, ok := r["seismic_zone"].(string)
	if !ok {
		zone = fmt.Sprint(r["seismic_zone"])
	}
	if loc.SeismicZone, err = ParseZone(zone); err != nil {
		return Location{}, err
	}
	if loc.MinTemp, err = toFloat(r["min_temp"], "min_temp"); err != nil {
		return Location{}, err
	}
	if loc.MaxTemp, err = toFloat(r["max_temp"], "max_temp"); err != nil {
		return Location{}, err
	}
	if loc.MinTemp > loc.MaxTemp {
		return Location{}, eris.Wrapf(ErrInvalidRecord, "min_temp %.1f greater than max_temp %.1f", loc.MinTemp, loc.MaxTemp)
	}
	return loc, nil
}

func normalizeName(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", eris.Wrap(ErrInvalidRecord, "state and district names must be strings")
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", eris.Wrap(ErrInvalidRecord, "state and district names cannot be blank")
	}
	return cases.Title(language.Und).String(s), nil
}

func toFloat(v any, field string) (float64, error) {
	f, err := parseFloat(v, field)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, eris.Wrapf(ErrInvalidRecord, "%s must be finite", field)
	}
	return f, nil
}

func parseFloat(v any, field string) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, eris.Wrapf(ErrInvalidRecord, "%s must be numeric", field)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, eris.Wrapf(ErrInvalidRecord, "%s must be numeric", field)
		}
		return f, nil
	default:
		return 0, eris.Wrapf(ErrInvalidRecord, "%s must be numeric", field)
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
