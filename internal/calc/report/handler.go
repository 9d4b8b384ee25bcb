package report

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/geometry"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/httpjson"
	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
)

type Handler struct {
	Catalog catalog.Provider
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(r, &input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var locations []catalog.Location
	if input.Location != nil {
		var err error
		if locations, err = h.Catalog.ListAllLocations(r.Context()); err != nil {
			zap.L().Error("report: list locations", zap.Error(err))
			http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	pdf, err := Build(input, locations)
	if err != nil {
		code := geometry.ErrorCode(err)
		if code == "error" {
			code = matcher.ErrorCode(err)
		}
		if code == "error" {
			zap.L().Error("report: build", zap.Error(err))
			http.Error(w, "Report generation error", http.StatusInternalServerError)
			return
		}
		httpjson.Error(w, http.StatusUnprocessableEntity, code, err, nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		zap.L().Warn("report: write pdf", zap.Error(err))
		return
	}
	metrics.ReportsTotal.Inc()
}
