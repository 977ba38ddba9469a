package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable is returned when the video source could not deliver a playlist,
	// either because the remote service rejected the request or the transport failed.
	ErrSourceUnavailable = errors.New("video source unavailable")

	// ErrPresentationNotFound is returned when a rate or comment references an unknown presentation
	ErrPresentationNotFound = errors.New("presentation not found")

	// ErrConferenceNotFound is returned when a conference lookup misses
	ErrConferenceNotFound = errors.New("conference not found")

	// ErrYearNotSupported marks a year string that matches no entry of the year index
	ErrYearNotSupported = errors.New("year not supported")

	// ErrConferenceExists is returned when a conference id is already held by the repository
	ErrConferenceExists = errors.New("conference already exists")

	// ErrDuplicatePresentation is returned when a conference carries a presentation id
	// that is already held by another conference
	ErrDuplicatePresentation = errors.New("duplicate presentation")

	// ErrInvalidInput is the root of every validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single field that failed validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field failures for one value. It matches ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
