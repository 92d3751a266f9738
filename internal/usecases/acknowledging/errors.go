package acknowledging

import (
	"errors"
	"fmt"
)

var (
	ErrNoAnomalyIDs      = errors.New("no anomaly IDs provided")
	ErrMissingAuthor     = errors.New("acknowledgment author is required")
	ErrUnknownAction     = errors.New("unknown chat action")
	ErrInvalidParameters = errors.New("invalid chat action parameters")
	ErrAnomaliesNotFound = errors.New("anomalies not found")
	ErrDatabaseOperation = errors.New("database operation error")
)

// AcknowledgeError carrega o código da API junto do erro base
type AcknowledgeError struct {
	Err     error
	Code    string
	Details string
}

func (e *AcknowledgeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AcknowledgeError) Unwrap() error {
	return e.Err
}

func NewAcknowledgeError(err error, code string, details string) *AcknowledgeError {
	return &AcknowledgeError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
