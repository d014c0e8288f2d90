package prediction

import "errors"

var (
	// ErrModelUnavailable indicates the model artifact was never loaded.
	// This is a startup/configuration fault, not a per-request condition.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInference indicates an unexpected failure inside the predict call.
	// The wrapped detail is logged but never surfaced to clients.
	ErrInference = errors.New("inference failed")
)
