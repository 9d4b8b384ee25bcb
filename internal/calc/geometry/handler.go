package geometry

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/httpjson"
	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
)

type InitInput struct {
	CarriagewayWidthM float64 `json:"carriageway_width_m"`
}

type EditInput struct {
	CarriagewayWidthM float64 `json:"carriageway_width_m"`
	Current           Triple  `json:"current"`
	Field             Field   `json:"field"`
	Value             float64 `json:"value"`
}

type Result struct {
	CarriagewayWidthM float64 `json:"carriageway_width_m"`
	OverallWidthM     float64 `json:"overall_width_m"`
	Triple
}

type Handler struct{}

func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	var input InitInput
	if err := httpjson.Decode(r, &input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	t, err := Initialize(input.CarriagewayWidthM)
	if err != nil {
		metrics.GeometryEditsTotal.WithLabelValues("init", ErrorCode(err)).Inc()
		httpjson.Error(w, http.StatusUnprocessableEntity, ErrorCode(err), err, nil)
		return
	}
	metrics.GeometryEditsTotal.WithLabelValues("init", "ok").Inc()
	httpjson.Write(w, http.StatusOK, Result{
		CarriagewayWidthM: input.CarriagewayWidthM,
		OverallWidthM:     OverallWidth(input.CarriagewayWidthM),
		Triple:            t,
	})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var input EditInput
	if err := httpjson.Decode(r, &input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	overall := OverallWidth(input.CarriagewayWidthM)
	next, err := Apply(overall, input.Current, Edit{Field: input.Field, Value: input.Value})
	if err != nil {
		code := ErrorCode(err)
		metrics.GeometryEditsTotal.WithLabelValues(input.Field.String(), code).Inc()
		zap.L().Debug("geometry: edit rejected",
			zap.String("field", input.Field.String()),
			zap.Float64("value", input.Value),
			zap.Float64("overall_width_m", overall),
			zap.Error(err),
		)
		httpjson.Error(w, http.StatusUnprocessableEntity, code, err, next)
		return
	}
	metrics.GeometryEditsTotal.WithLabelValues(input.Field.String(), "ok").Inc()
	httpjson.Write(w, http.StatusOK, Result{
		CarriagewayWidthM: input.CarriagewayWidthM,
		OverallWidthM:     overall,
		Triple:            next,
	})
}

// ErrorCode maps solver errors to the stable codes used by API clients.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWidth):
		return "invalid_width"
	case errors.Is(err, ErrInvalidSpacing):
		return "invalid_spacing"
	case errors.Is(err, ErrInvalidGirderCount):
		return "invalid_girder_count"
	case errors.Is(err, ErrInvalidOverhang):
		return "invalid_overhang"
	case errors.Is(err, ErrConstraintViolated):
		return "constraint_violated"
	case errors.Is(err, ErrUnknownField):
		return "unknown_field"
	default:
		return "error"
	}
}
