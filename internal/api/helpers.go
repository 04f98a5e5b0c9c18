// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/jcarmona/fitbrain/internal/logging"
)

// maxBodyBytes caps request bodies; every payload here is small JSON.
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with headers set.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("marshaling response failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("writing response failed")
	}
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// respondValidationError maps validator field errors to a 422 body with
// per-field messages.
func respondValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: details,
		})
		return
	}
	respondError(w, http.StatusUnprocessableEntity, err.Error())
}

// decodeRequest reads and validates a JSON request body into dst, which
// must be a pointer to a request struct with validate tags.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "reading request body failed")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}
