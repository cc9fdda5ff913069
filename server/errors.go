package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrRequired     = errors.New("required field missing")
	ErrInvalidInput = errors.New("invalid input")
)

// msgUnavailable is the only message returned for unexpected failures.
const msgUnavailable = "Servizio temporaneamente non disponibile. Riprova tra qualche minuto."

// ValidationError carries the user-facing message of a rejected request.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

func required(msg string) error { return &ValidationError{Kind: ErrRequired, Message: msg} }

func invalid(msg string) error { return &ValidationError{Kind: ErrInvalidInput, Message: msg} }

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps validation errors to 400 and masks everything else.
func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msgUnavailable})
}
