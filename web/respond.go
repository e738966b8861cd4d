package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/evetools/killfeed/app"
	"github.com/evetools/killfeed/domain/schema"
)

// statusBody is the minimal error body shape.
type statusBody struct {
	StatusMessage string `json:"statusMessage"`
}

// validationBody carries the full field-error list for a 400 response.
type validationBody struct {
	StatusMessage string              `json:"statusMessage"`
	Errors        []schema.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeStatusMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, statusBody{StatusMessage: msg})
}

func writeFieldErrors(w http.ResponseWriter, errs []schema.FieldError) {
	writeJSON(w, http.StatusBadRequest, validationBody{
		StatusMessage: "Validation failed",
		Errors:        errs,
	})
}

// isNotFound reports whether err is a lookup miss.
func isNotFound(err error) bool {
	var nf app.NotFoundError
	return errors.As(err, &nf)
}

// writeError translates a lookup error into an HTTP response. A miss is
// an expected outcome and is never logged as a failure; anything else is
// surfaced as an opaque 500 with the cause preserved in the log.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var nf app.NotFoundError
	if errors.As(err, &nf) {
		writeStatusMessage(w, http.StatusNotFound, nf.Error())
		return
	}
	logger.Error().Err(err).Msg("lookup failed")
	writeStatusMessage(w, http.StatusInternalServerError, "Internal server error")
}
