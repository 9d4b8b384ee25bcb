package geometry

import "github.com/rotisserie/eris"

var (
	ErrInvalidWidth       = eris.New("geometry: invalid overall width")
	ErrInvalidSpacing     = eris.New("geometry: invalid spacing")
	ErrInvalidGirderCount = eris.New("geometry: invalid girder count")
	ErrInvalidOverhang    = eris.New("geometry: invalid overhang")
	ErrConstraintViolated = eris.New("geometry: constraint violated")
	ErrUnknownField       = eris.New("geometry: unknown field")
)
