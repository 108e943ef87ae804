package backend

import (
	"errors"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
)

// APIError classifies a failed backend interaction. Kind is one of the
// taxonomy sentinels in types (transport, server-reported), Message is the
// human-readable reason to surface.
type APIError struct {
	Kind    error
	Message string
}

func (e *APIError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func transportError(msg string) error {
	return &APIError{Kind: types.ErrTransport, Message: msg}
}

func serverError(msg string) error {
	if msg == "" {
		msg = "request rejected by the server"
	}
	return &APIError{Kind: types.ErrServerReported, Message: msg}
}

// Reason extracts the user-visible message from any error produced by this
// package, falling back to the plain error text.
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
