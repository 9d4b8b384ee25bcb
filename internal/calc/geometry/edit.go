package geometry

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Field names the layout quantity a user edited.
type Field int

const (
	FieldSpacing Field = iota + 1
	FieldGirders
	FieldOverhang
)

var fieldNames = map[Field]string{
	FieldSpacing:  "spacing",
	FieldGirders:  "girders",
	FieldOverhang: "overhang",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseField accepts the text form used on the wire.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for f, name := range fieldNames {
		if name == key {
			return f, nil
		}
	}
	return 0, eris.Wrapf(ErrUnknownField, "%q", s)
}

func (f Field) MarshalText() ([]byte, error) {
	if _, ok := fieldNames[f]; !ok {
		return nil, eris.Wrapf(ErrUnknownField, "%d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(b []byte) error {
	v, err := ParseField(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Edit is a single-field change coming from the layout dialog.
type Edit struct {
	Field Field   `json:"field"`
	Value float64 `json:"value"`
}

type resolver func(overall float64, cur Triple, value float64) (Triple, error)

// Each edit holds exactly one other field fixed:
// spacing holds overhang, girders holds spacing, overhang holds girders.
var resolvers = map[Field]resolver{
	FieldSpacing: UpdateFromSpacing,
	FieldGirders: func(overall float64, cur Triple, value float64) (Triple, error) {
		if value != math.Trunc(value) || math.IsInf(value, 0) {
			return Triple{}, eris.Wrapf(ErrInvalidGirderCount, "girder count %v is not an integer", value)
		}
		return UpdateFromGirders(overall, cur, int(value))
	},
	FieldOverhang: UpdateFromOverhang,
}

// Apply resolves an edit against the current layout. On error the returned
// triple is cur, so callers can keep rendering the last valid layout.
func Apply(overall float64, cur Triple, e Edit) (Triple, error) {
	resolve, ok := resolvers[e.Field]
	if !ok {
		return cur, eris.Wrapf(ErrUnknownField, "%d", int(e.Field))
	}
	next, err := resolve(overall, cur, e.Value)
	if err != nil {
		return cur, err
	}
	return next, nil
}
