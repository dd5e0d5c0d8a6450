package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// tab or snapshot does not exist in the spreadsheet.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. keys flag outside {"", "X"}, entry re-dated).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrSchema is returned when the source sheet no longer matches the column
// layout the roster is built from (missing header row, renamed columns).
// Handlers should map this to HTTP 502 because the fault is upstream.
var ErrSchema = errors.New("source schema mismatch")
