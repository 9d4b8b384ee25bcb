package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = Triple{Spacing: 2.5, Girders: 4, Overhang: 2.5}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  Triple
	}{
		{"standard two-lane", 7.5, Triple{Spacing: 2.5, Girders: 4, Overhang: 2.5}},
		{"minimum carriageway", 4.25, Triple{Spacing: 2.5, Girders: 2, Overhang: 4.3}},
		{"wide deck", 10, Triple{Spacing: 2.5, Girders: 5, Overhang: 2.5}},
		{"exact multiple", 7, Triple{Spacing: 2.5, Girders: 4, Overhang: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Initialize(tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Check(OverallWidth(tt.width)))
		})
	}
}

func TestInitialize_Errors(t *testing.T) {
	_, err := Initialize(-6)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = Initialize(-2)
	assert.ErrorIs(t, err, ErrConstraintViolated)
}

func TestOverallWidth(t *testing.T) {
	assert.InDelta(t, 12.5, OverallWidth(7.5), 1e-9)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 2.5, Round1(2.5))
	assert.Equal(t, 4.3, Round1(4.25))
	assert.Equal(t, 3.3, Round1(3.333))
	assert.Equal(t, -1.9, Round1(-1.9000000001))
	got := Round1(-0.04)
	assert.Equal(t, 0.0, got)
	assert.False(t, got < 0 || 1/got < 0, "negative zero leaked")
}

func TestUpdateFromSpacing(t *testing.T) {
	got, err := UpdateFromSpacing(12.5, base, 3.0)
	require.NoError(t, err)
	assert.Equal(t, Triple{Spacing: 3.0, Girders: 3, Overhang: 3.5}, got)

	got, err = UpdateFromSpacing(12.5, base, 2.0)
	require.NoError(t, err)
	assert.Equal(t, Triple{Spacing: 2.0, Girders: 5, Overhang: 2.5}, got)
}

func TestUpdateFromSpacing_Idempotent(t *testing.T) {
	for _, s := range []float64{1.2, 2.0, 2.7, 3.0, 3.3, 4.1, 6.0} {
		first, err := UpdateFromSpacing(12.5, base, s)
		require.NoError(t, err, "spacing %v", s)
		second, err := UpdateFromSpacing(12.5, first, s)
		require.NoError(t, err, "spacing %v", s)
		assert.Equal(t, first, second, "spacing %v", s)
	}
}

func TestUpdateFromSpacing_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cur     Triple
		spacing float64
		want    error
	}{
		{"at overall width", base, 12.5, ErrInvalidSpacing},
		{"beyond overall width", base, 13.0, ErrInvalidSpacing},
		{"zero", base, 0, ErrInvalidSpacing},
		{"negative", base, -1, ErrInvalidSpacing},
		{"rounds past the edge", Triple{Spacing: 2.5, Girders: 5, Overhang: 0}, 4.8, ErrConstraintViolated},
		{"overhang rounds up to overall width", Triple{Spacing: 0.1, Girders: 1, Overhang: 12.45}, 0.04, ErrConstraintViolated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UpdateFromSpacing(12.5, tt.cur, tt.spacing)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateFromGirders(t *testing.T) {
	got, err := UpdateFromGirders(12.5, base, 5)
	require.NoError(t, err)
	assert.Equal(t, Triple{Spacing: 2.5, Girders: 5, Overhang: 0}, got)

	got, err = UpdateFromGirders(12.5, base, 3)
	require.NoError(t, err)
	assert.Equal(t, Triple{Spacing: 2.5, Girders: 3, Overhang: 5}, got)
}

func TestUpdateFromGirders_Errors(t *testing.T) {
	_, err := UpdateFromGirders(12.5, base, 0)
	assert.ErrorIs(t, err, ErrInvalidGirderCount)

	_, err = UpdateFromGirders(12.5, base, -2)
	assert.ErrorIs(t, err, ErrInvalidGirderCount)

	_, err = UpdateFromGirders(12.5, base, 6)
	assert.ErrorIs(t, err, ErrConstraintViolated)
}

func TestUpdateFromOverhang(t *testing.T) {
	got, err := UpdateFromOverhang(12.5, base, 1.3)
	require.NoError(t, err)
	assert.Equal(t, Triple{Spacing: 2.8, Girders: 4, Overhang: 1.3}, got)
	assert.NoError(t, got.Check(12.5))

	got, err = UpdateFromOverhang(12.5, base, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.1, got.Spacing, 1e-9)
	assert.NoError(t, got.Check(12.5))
}

func TestUpdateFromOverhang_Errors(t *testing.T) {
	_, err := UpdateFromOverhang(12.5, base, 12.5)
	assert.ErrorIs(t, err, ErrInvalidOverhang)

	_, err = UpdateFromOverhang(12.5, base, -0.1)
	assert.ErrorIs(t, err, ErrInvalidOverhang)

	_, err = UpdateFromOverhang(12.5, base, 12.45)
	assert.ErrorIs(t, err, ErrConstraintViolated)
}

func TestSolverKeepsInvariant(t *testing.T) {
	for _, cw := range []float64{4.25, 5.5, 7.5, 9, 11.25, 14} {
		overall := OverallWidth(cw)
		start, err := Initialize(cw)
		require.NoError(t, err)
		require.NoError(t, start.Check(overall))

		edits := []Edit{
			{FieldSpacing, 1.8}, {FieldGirders, 3}, {FieldOverhang, 1.0},
			{FieldSpacing, 3.2}, {FieldGirders, 2}, {FieldOverhang, 0.6},
			{FieldSpacing, 2.4},
		}
		cur := start
		for _, e := range edits {
			next, err := Apply(overall, cur, e)
			if err != nil {
				assert.Equal(t, cur, next, "width %v edit %+v", cw, e)
				continue
			}
			assert.NoError(t, next.Check(overall), "width %v edit %+v", cw, e)
			cur = next
		}
	}
}
