package types

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")

	ErrValidation      = errors.New("validation failed")
	ErrServerReported  = errors.New("server reported failure")
	ErrTransport       = errors.New("transport failure")
	ErrExternalService = errors.New("external service unavailable")

	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNoCredential     = errors.New("missing external service credential")
	ErrLocationNotFound = errors.New("location not found")

	ErrNotFound = errors.New("requested item not found")
)
