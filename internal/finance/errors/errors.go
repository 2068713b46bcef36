package errors

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

type AlreadyExistsError struct {
	Resource string
	Detail   string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Detail)
}

func NewAlreadyExistsError(resource, detail string) error {
	return &AlreadyExistsError{Resource: resource, Detail: detail}
}

func IsAlreadyExistsError(err error) bool {
	var alreadyExistsError *AlreadyExistsError
	return errors.As(err, &alreadyExistsError)
}

type AccessDeniedError struct {
	Msg string
}

func (e *AccessDeniedError) Error() string {
	return e.Msg
}

func NewAccessDeniedError(msg string) error {
	return &AccessDeniedError{Msg: msg}
}

func IsAccessDeniedError(err error) bool {
	var accessDeniedError *AccessDeniedError
	return errors.As(err, &accessDeniedError)
}

// UpstreamError covers failures of the external OCR module. Timeout is kept
// separate so handlers can tell a slow upstream from a broken one.
type UpstreamError struct {
	Msg     string
	Timeout bool
}

func (e *UpstreamError) Error() string {
	return e.Msg
}

func NewUpstreamError(msg string) error {
	return &UpstreamError{Msg: msg}
}

func NewUpstreamTimeoutError(msg string) error {
	return &UpstreamError{Msg: msg, Timeout: true}
}

func IsUpstreamError(err error) bool {
	var upstreamError *UpstreamError
	return errors.As(err, &upstreamError)
}
