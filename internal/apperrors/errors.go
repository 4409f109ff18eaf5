package apperrors

import (
	"errors"
	"fmt"
)

// UpstreamKind classifies why a call to the ML service failed. The kind is
// preserved through retries so controllers can map it to 503 vs 504.
type UpstreamKind string

const (
	UpstreamRefused   UpstreamKind = "refused"
	UpstreamNotFound  UpstreamKind = "not_found"
	UpstreamTimeout   UpstreamKind = "timeout"
	UpstreamMalformed UpstreamKind = "malformed"
)

// ValidationError marks a missing or malformed request field (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError marks an absent food, entry or log (HTTP 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ForbiddenError marks an ownership violation (HTTP 403).
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// UpstreamError marks an exhausted call to the external ML service.
type UpstreamError struct {
	Kind UpstreamKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ml service unavailable (%s): %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...interface{}) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

func NewUpstream(kind UpstreamKind, err error) error {
	return &UpstreamError{Kind: kind, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

// AsUpstream returns the UpstreamError wrapped in err, if any.
func AsUpstream(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
