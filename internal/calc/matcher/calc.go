package matcher

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
)

// Reference scales. They are fixed so scores compare across catalogs and runs.
const (
	WindSpan = 50.0 // m/s
	ZoneSpan = 4.0  // rank distance between zone I and zone V
	TempSpan = 50.0 // °C

	WindWeight = 1.0
	ZoneWeight = 1.0
	TempWeight = 1.0
)

var (
	ErrEmptyQuery              = eris.New("matcher: no parameters supplied")
	ErrUnknownSeismicZone      = catalog.ErrUnknownSeismicZone
	ErrInvalidTemperatureRange = eris.New("matcher: min_temp greater than max_temp")
	ErrNonFiniteValue          = eris.New("matcher: value must be a finite number")
)

// Query holds user-entered design parameters. Nil pointers and an empty zone
// are absent and take no part in scoring.
type Query struct {
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	SeismicZone string   `json:"seismic_zone,omitempty"`
	MinTemp     *float64 `json:"min_temp,omitempty"`
	MaxTemp     *float64 `json:"max_temp,omitempty"`
}

// Breakdown holds the normalized distance of each present term; absent terms are nil.
type Breakdown struct {
	Wind        *float64 `json:"wind,omitempty"`
	Zone        *float64 `json:"zone,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type Result struct {
	Found         bool             `json:"found"`
	Location      catalog.Location `json:"location"`
	Confidence    float64          `json:"confidence"`
	Dissimilarity float64          `json:"dissimilarity"`
	Terms         Breakdown        `json:"terms"`
}

type prepared struct {
	wind             *float64
	zone             catalog.Zone
	minTemp, maxTemp *float64
	terms            int
}

func prepare(q Query) (prepared, error) {
	p := prepared{wind: q.WindSpeed, minTemp: q.MinTemp, maxTemp: q.MaxTemp}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"wind_speed", p.wind}, {"min_temp", p.minTemp}, {"max_temp", p.maxTemp}} {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return prepared{}, eris.Wrapf(ErrNonFiniteValue, "%s %v", f.name, *f.v)
		}
	}
	if strings.TrimSpace(q.SeismicZone) != "" {
		z, err := catalog.ParseZone(q.SeismicZone)
		if err != nil {
			return prepared{}, err
		}
		p.zone = z
	}
	if p.minTemp != nil && p.maxTemp != nil && *p.minTemp > *p.maxTemp {
		return prepared{}, eris.Wrapf(ErrInvalidTemperatureRange, "%.1f > %.1f", *p.minTemp, *p.maxTemp)
	}
	if p.wind != nil {
		p.terms++
	}
	if p.zone.Valid() {
		p.terms++
	}
	if p.minTemp != nil || p.maxTemp != nil {
		p.terms++
	}
	if p.terms == 0 {
		return prepared{}, ErrEmptyQuery
	}
	return p, nil
}

// score returns the averaged weighted dissimilarity of loc against the query.
func (p prepared) score(loc catalog.Location) (float64, Breakdown) {
	var (
		b   Breakdown
		sum float64
	)
	if p.wind != nil {
		d := math.Abs(*p.wind-loc.WindSpeed) / WindSpan
		b.Wind = &d
		sum += WindWeight * d
	}
	if p.zone.Valid() {
		d := math.Abs(float64(p.zone.Rank()-loc.SeismicZone.Rank())) / ZoneSpan
		b.Zone = &d
		sum += ZoneWeight * d
	}
	if p.minTemp != nil || p.maxTemp != nil {
		var (
			acc float64
			n   int
		)
		if p.minTemp != nil {
			acc += math.Abs(*p.minTemp-loc.MinTemp) / TempSpan
			n++
		}
		if p.maxTemp != nil {
			acc += math.Abs(*p.maxTemp-loc.MaxTemp) / TempSpan
			n++
		}
		d := acc / float64(n)
		b.Temperature = &d
		sum += TempWeight * d
	}
	return sum / float64(p.terms), b
}

// FindClosest scans locations and returns the least dissimilar one. Ties go to
// the earliest entry. An empty list yields Result{Found: false} and no error.
func FindClosest(q Query, locations []catalog.Location) (Result, error) {
	p, err := prepare(q)
	if err != nil {
		return Result{}, err
	}
	return p.closest(locations), nil
}

func (p prepared) closest(locations []catalog.Location) Result {
	best := Result{}
	bestScore := math.Inf(1)
	for i := range locations {
		s, b := p.score(locations[i])
		if s < bestScore {
			bestScore = s
			best = Result{Found: true, Location: locations[i], Dissimilarity: s, Terms: b}
		}
	}
	if best.Found {
		best.Confidence = Confidence(bestScore)
	}
	return best
}

// Confidence maps a dissimilarity onto [0, 100]. It is not rounded; the wire
// form rounds to one decimal.
func Confidence(dissimilarity float64) float64 {
	return 100 * (1 - math.Min(math.Max(dissimilarity, 0), 1))
}

// BatchItem is the outcome for one query of FindClosestAll.
type BatchItem struct {
	Result Result
	Err    error
}

// FindClosestAll runs every query against the same snapshot.
func FindClosestAll(queries []Query, locations []catalog.Location) []BatchItem {
	out := make([]BatchItem, len(queries))
	for i, q := range queries {
		out[i].Result, out[i].Err = FindClosest(q, locations)
	}
	return out
}
