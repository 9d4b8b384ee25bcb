// Package httpjson holds the JSON response helpers shared by the tool handlers.
package httpjson

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorBody is the payload of every non-2xx tool response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Current echoes the caller's last valid state when the tool has one.
	Current any `json:"current,omitempty"`
}

// Write encodes v before touching the response, so an unencodable value
// becomes a 500 instead of a truncated body behind the original status.
func Write(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zap.L().Error("httpjson: encode response", zap.Int("status", status), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zap.L().Warn("httpjson: write response", zap.Error(err))
	}
}

func Error(w http.ResponseWriter, status int, code string, err error, current any) {
	Write(w, status, ErrorBody{Error: err.Error(), Code: code, Current: current})
}

// Decode reads a JSON request body, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
