package importer

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/httpjson"
)

const maxUpload = 8 << 20

type Handler struct {
	Catalog catalog.Provider
}

type RowResult struct {
	Line int `json:"line"`
	matcher.BatchItemResponse
}

type ImportResult struct {
	Count   int         `json:"count"`
	Matched int         `json:"matched"`
	Results []RowResult `json:"results"`
}

// Locations matches every row of an uploaded sheet against one catalog snapshot.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadQueries(file)
	if err != nil {
		code := "invalid_file"
		switch {
		case errors.Is(err, ErrEmptySheet):
			code = "empty_sheet"
		case errors.Is(err, ErrNoQueryColumn):
			code = "no_query_column"
		}
		httpjson.Error(w, http.StatusBadRequest, code, err, nil)
		return
	}

	locations, err := h.Catalog.ListAllLocations(r.Context())
	if err != nil {
		zap.L().Error("importer: list locations", zap.Error(err))
		http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
		return
	}

	out := ImportResult{Count: len(rows), Results: make([]RowResult, 0, len(rows))}
	for _, row := range rows {
		rr := RowResult{Line: row.Line}
		if row.Err != nil {
			rr.Error, rr.Code = row.Err.Error(), "invalid_number"
			out.Results = append(out.Results, rr)
			continue
		}
		res, err := matcher.FindClosest(row.Query, locations)
		if err != nil {
			rr.Error, rr.Code = err.Error(), matcher.ErrorCode(err)
		} else {
			rr.Response = matcher.NewResponse(res)
			if res.Found {
				out.Matched++
			}
		}
		out.Results = append(out.Results, rr)
	}
	zap.L().Info("importer: sheet matched", zap.Int("rows", out.Count), zap.Int("matched", out.Matched))
	httpjson.Write(w, http.StatusOK, out)
}
