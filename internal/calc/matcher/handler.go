package matcher

import (
	"errors"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/httpjson"
	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
)

// maxBatch caps the number of queries accepted by one batch request.
const maxBatch = 500

// Response is the wire form of a match. Location fields are flattened and
// omitted when nothing matched.
type Response struct {
	Found bool `json:"found"`
	*catalog.Location
	Confidence    float64   `json:"confidence"`
	Dissimilarity float64   `json:"dissimilarity"`
	Terms         Breakdown `json:"terms"`
}

func NewResponse(res Result) Response {
	out := Response{Found: res.Found}
	if res.Found {
		loc := res.Location
		out.Location = &loc
		out.Confidence = round1(res.Confidence)
		out.Dissimilarity = res.Dissimilarity
		out.Terms = res.Terms
	}
	return out
}

type BatchInput struct {
	Items []Query `json:"items"`
}

type BatchItemResponse struct {
	Response
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

type BatchResponse struct {
	Items []BatchItemResponse `json:"items"`
}

type Handler struct {
	Catalog catalog.Provider
}

func (h *Handler) Closest(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := httpjson.Decode(r, &q); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, err := prepare(q)
	if err != nil {
		code := ErrorCode(err)
		metrics.MatchRequestsTotal.WithLabelValues(code).Inc()
		httpjson.Error(w, http.StatusUnprocessableEntity, code, err, nil)
		return
	}
	locations, err := h.Catalog.ListAllLocations(r.Context())
	if err != nil {
		zap.L().Error("matcher: list locations", zap.Error(err))
		metrics.MatchRequestsTotal.WithLabelValues("catalog_error").Inc()
		http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	res := p.closest(locations)
	observe(res)
	httpjson.Write(w, http.StatusOK, NewResponse(res))
}

func (h *Handler) ClosestBatch(w http.ResponseWriter, r *http.Request) {
	var input BatchInput
	if err := httpjson.Decode(r, &input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 || len(input.Items) > maxBatch {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	locations, err := h.Catalog.ListAllLocations(r.Context())
	if err != nil {
		zap.L().Error("matcher: list locations", zap.Error(err))
		http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	items := FindClosestAll(input.Items, locations)
	out := BatchResponse{Items: make([]BatchItemResponse, len(items))}
	for i, it := range items {
		if it.Err != nil {
			code := ErrorCode(it.Err)
			metrics.MatchRequestsTotal.WithLabelValues(code).Inc()
			out.Items[i] = BatchItemResponse{Error: it.Err.Error(), Code: code}
			continue
		}
		observe(it.Result)
		out.Items[i] = BatchItemResponse{Response: NewResponse(it.Result)}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func round1(x float64) float64 {
	r := math.Round(x*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

func observe(res Result) {
	if !res.Found {
		metrics.MatchRequestsTotal.WithLabelValues("not_found").Inc()
		return
	}
	metrics.MatchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.MatchConfidence.Observe(res.Confidence)
}

func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return "empty_query"
	case errors.Is(err, ErrUnknownSeismicZone):
		return "unknown_seismic_zone"
	case errors.Is(err, ErrInvalidTemperatureRange):
		return "invalid_temperature_range"
	case errors.Is(err, ErrNonFiniteValue):
		return "non_finite_value"
	default:
		return "error"
	}
}
