package tokenomics

import "errors"

var (
	// ErrModelUnavailable is returned when the model could not be reached or refused the request
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrModelTimeout is returned when the model did not answer before the deadline
	ErrModelTimeout = errors.New("model timeout")
	// ErrMalformedResponse is returned when the model answer is not a valid design
	ErrMalformedResponse = errors.New("malformed model response")
)
