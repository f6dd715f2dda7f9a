package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/niki241/NeuroBridge-New/pkg/httperr"
)

type errorResponse = httperr.ErrorResponse

func writeError(w http.ResponseWriter, status int, message string) {
	code := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
