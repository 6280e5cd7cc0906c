package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; request structs carry validate tags.
var validate = validator.New()

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError emits the error envelope clients expect: {"message": "..."}.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]string{"message": msg}, status)
}

// decodeJSON parses the request body into dst and runs struct validation.
// A false return means the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
