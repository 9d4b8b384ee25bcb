package geometry

import (
	"math"

	"github.com/rotisserie/eris"
)

const (
	// ClearanceMargin is added to the carriageway width to get the overall deck width.
	ClearanceMargin = 5.0
	// DefaultSpacing is the girder spacing used for a fresh layout.
	DefaultSpacing = 2.5
	// EdgeReserve is kept free of girders when the default layout is derived.
	EdgeReserve = 2.0

	floorEps = 1e-9
)

// Triple is the deck-girder layout across the overall width.
type Triple struct {
	Spacing  float64 `json:"spacing_m"`
	Girders  int     `json:"girders"`
	Overhang float64 `json:"overhang_m"`
}

// OverallWidth returns carriageway width plus the clearance margin.
func OverallWidth(carriagewayWidth float64) float64 {
	return carriagewayWidth + ClearanceMargin
}

// Round1 rounds to one decimal place. Every derived geometry value goes through it.
func Round1(x float64) float64 {
	r := math.Round(x*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

// Initialize derives the default layout for a carriageway width.
func Initialize(carriagewayWidth float64) (Triple, error) {
	overall := OverallWidth(carriagewayWidth)
	if overall <= 0 || math.IsNaN(overall) || math.IsInf(overall, 0) {
		return Triple{}, eris.Wrapf(ErrInvalidWidth, "overall width %.2f", overall)
	}
	girders := int(math.Floor((overall-EdgeReserve)/DefaultSpacing + floorEps))
	if girders < 1 {
		return Triple{}, eris.Wrapf(ErrConstraintViolated, "overall width %.2f leaves no room for a girder", overall)
	}
	return Triple{
		Spacing:  DefaultSpacing,
		Girders:  girders,
		Overhang: Round1(overall - float64(girders)*DefaultSpacing),
	}, nil
}

// UpdateFromSpacing keeps the overhang and re-derives the girder count for a new spacing.
func UpdateFromSpacing(overall float64, cur Triple, spacing float64) (Triple, error) {
	if err := checkWidth(overall); err != nil {
		return Triple{}, err
	}
	if !(spacing > 0) || spacing >= overall {
		return Triple{}, eris.Wrapf(ErrInvalidSpacing, "spacing %.2f outside (0, %.2f)", spacing, overall)
	}
	girders := int(math.Round((overall - cur.Overhang) / spacing))
	if girders < 1 {
		return Triple{}, eris.Wrapf(ErrConstraintViolated, "spacing %.2f fits no girder", spacing)
	}
	overhang := Round1(overall - float64(girders)*spacing)
	if overhang < 0 || overhang >= overall {
		return Triple{}, eris.Wrapf(ErrConstraintViolated, "overhang %.1f for %d girders at %.2f outside [0, %.2f)", overhang, girders, spacing, overall)
	}
	return Triple{Spacing: spacing, Girders: girders, Overhang: overhang}, nil
}

// UpdateFromGirders keeps the spacing and re-derives the overhang for a new girder count.
func UpdateFromGirders(overall float64, cur Triple, girders int) (Triple, error) {
	if err := checkWidth(overall); err != nil {
		return Triple{}, err
	}
	if girders <= 0 {
		return Triple{}, eris.Wrapf(ErrInvalidGirderCount, "girder count %d", girders)
	}
	if !(cur.Spacing > 0) {
		return Triple{}, eris.Wrapf(ErrInvalidSpacing, "current spacing %.2f", cur.Spacing)
	}
	overhang := Round1(overall - cur.Spacing*float64(girders))
	if overhang < 0 || overhang >= overall {
		return Triple{}, eris.Wrapf(ErrConstraintViolated, "overhang %.1f outside [0, %.2f)", overhang, overall)
	}
	return Triple{Spacing: cur.Spacing, Girders: girders, Overhang: overhang}, nil
}

// UpdateFromOverhang keeps the girder count and re-derives the spacing for a new overhang.
func UpdateFromOverhang(overall float64, cur Triple, overhang float64) (Triple, error) {
	if err := checkWidth(overall); err != nil {
		return Triple{}, err
	}
	if !(overhang >= 0) || overhang >= overall {
		return Triple{}, eris.Wrapf(ErrInvalidOverhang, "overhang %.2f outside [0, %.2f)", overhang, overall)
	}
	if cur.Girders < 1 {
		return Triple{}, eris.Wrapf(ErrInvalidGirderCount, "current girder count %d", cur.Girders)
	}
	spacing := Round1((overall - overhang) / float64(cur.Girders))
	if spacing <= 0 {
		return Triple{}, eris.Wrapf(ErrConstraintViolated, "spacing %.1f for %d girders", spacing, cur.Girders)
	}
	return Triple{Spacing: spacing, Girders: cur.Girders, Overhang: overhang}, nil
}

// Check reports whether t satisfies the layout invariant for the overall width.
// Overhang is compared within the rounding tolerance accumulated over all girders.
func (t Triple) Check(overall float64) error {
	switch {
	case !(t.Spacing > 0):
		return eris.Wrapf(ErrInvalidSpacing, "spacing %.2f", t.Spacing)
	case t.Girders < 1:
		return eris.Wrapf(ErrInvalidGirderCount, "girder count %d", t.Girders)
	case t.Overhang < 0 || t.Overhang >= overall:
		return eris.Wrapf(ErrConstraintViolated, "overhang %.2f outside [0, %.2f)", t.Overhang, overall)
	}
	tol := 0.05*float64(t.Girders) + 0.05 + floorEps
	if math.Abs(t.Overhang-Round1(overall-t.Spacing*float64(t.Girders))) > tol {
		return eris.Wrapf(ErrConstraintViolated, "overhang %.2f does not close width %.2f", t.Overhang, overall)
	}
	return nil
}

func checkWidth(overall float64) error {
	if !(overall > 0) || math.IsInf(overall, 0) {
		return eris.Wrapf(ErrInvalidWidth, "overall width %.2f", overall)
	}
	return nil
}
