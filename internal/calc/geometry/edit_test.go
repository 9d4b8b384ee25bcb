package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Dispatch(t *testing.T) {
	tests := []struct {
		edit Edit
		want Triple
	}{
		{Edit{FieldSpacing, 3.0}, Triple{Spacing: 3.0, Girders: 3, Overhang: 3.5}},
		{Edit{FieldGirders, 5}, Triple{Spacing: 2.5, Girders: 5, Overhang: 0}},
		{Edit{FieldOverhang, 1.3}, Triple{Spacing: 2.8, Girders: 4, Overhang: 1.3}},
	}
	for _, tt := range tests {
		t.Run(tt.edit.Field.String(), func(t *testing.T) {
			got, err := Apply(12.5, base, tt.edit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_SpacingCannotPushOverhangToFullWidth(t *testing.T) {
	cur, err := Apply(12.5, base, Edit{FieldGirders, 1})
	require.NoError(t, err)
	cur, err = Apply(12.5, cur, Edit{FieldOverhang, 12.45})
	require.NoError(t, err)
	require.Equal(t, Triple{Spacing: 0.1, Girders: 1, Overhang: 12.45}, cur)

	// One girder at 0.04 leaves round1(12.46) = 12.5, the full width.
	got, err := Apply(12.5, cur, Edit{FieldSpacing, 0.04})
	assert.ErrorIs(t, err, ErrConstraintViolated)
	assert.Equal(t, cur, got)
	assert.NoError(t, got.Check(12.5))
}

func TestApply_RejectionKeepsPriorTriple(t *testing.T) {
	got, err := Apply(12.5, base, Edit{FieldSpacing, 13.0})
	assert.ErrorIs(t, err, ErrInvalidSpacing)
	assert.Equal(t, base, got)

	got, err = Apply(12.5, base, Edit{FieldGirders, 2.5})
	assert.ErrorIs(t, err, ErrInvalidGirderCount)
	assert.Equal(t, base, got)

	got, err = Apply(12.5, base, Edit{Field(42), 1})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, base, got)
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Girders ")
	require.NoError(t, err)
	assert.Equal(t, FieldGirders, f)

	_, err = ParseField("width")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEdit_JSON(t *testing.T) {
	var e Edit
	require.NoError(t, json.Unmarshal([]byte(`{"field":"overhang","value":1.2}`), &e))
	assert.Equal(t, Edit{Field: FieldOverhang, Value: 1.2}, e)

	b, err := json.Marshal(Edit{Field: FieldSpacing, Value: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"spacing","value":2}`, string(b))
}
