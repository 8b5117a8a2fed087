package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("writing response")
	}
}

func badRequest(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	log.WithError(err).Debug("rejecting request body")
	http.Error(w, "invalid request body", http.StatusBadRequest)
}
