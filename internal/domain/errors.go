package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the stable, machine-readable identity of an error kind.
type ErrorCode string

const (
	CodeValidation ErrorCode = "validation_error"
	CodeConfig     ErrorCode = "config_error"
	CodeGeneration ErrorCode = "generation_error"
	CodeFilesystem ErrorCode = "filesystem_error"
)

// BaseError is the root of the error hierarchy. Every concrete kind embeds it.
type BaseError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *BaseError) Unwrap() error { return e.Cause }

// Base returns the embedded root error.
func (e *BaseError) Base() *BaseError { return e }

// Coded is implemented by every error kind in the hierarchy.
type Coded interface {
	error
	Base() *BaseError
}

// CodeOf reports the machine-readable code of err, or "" when err is not part of the hierarchy.
func CodeOf(err error) ErrorCode {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Base().Code
	}
	return ""
}

// ValidationError reports a malformed recording or a malformed persisted configuration shape.
// Violations holds every violated field, not just the first.
type ValidationError struct {
	BaseError
	Violations []string
}

// NewValidationError aggregates violations into one error whose message enumerates all of them.
func NewValidationError(subject string, violations []string) *ValidationError {
	msg := subject
	if len(violations) > 0 {
		msg = fmt.Sprintf("%s: %s", subject, strings.Join(violations, "; "))
	}
	return &ValidationError{
		BaseError:  BaseError{Code: CodeValidation, Message: msg},
		Violations: append([]string(nil), violations...),
	}
}

// ConfigError covers missing or invalid credentials, unsupported providers and
// configuration I/O failures.
type ConfigError struct {
	BaseError
}

// NewConfigError builds a ConfigError. The cause's message is kept as context.
func NewConfigError(msg string, cause error) *ConfigError {
	return &ConfigError{BaseError: BaseError{Code: CodeConfig, Message: msg, Cause: cause}}
}

// GenerationError is a remote generation failure tagged with the originating provider.
type GenerationError struct {
	BaseError
	Provider Provider
}

// NewGenerationError builds a GenerationError for provider.
func NewGenerationError(provider Provider, msg string, cause error) *GenerationError {
	return &GenerationError{
		BaseError: BaseError{Code: CodeGeneration, Message: fmt.Sprintf("%s: %s", provider, msg), Cause: cause},
		Provider:  provider,
	}
}

// FilesystemError reports a read, write or access failure on Path.
type FilesystemError struct {
	BaseError
	Op   string
	Path string
}

// NewFilesystemError builds a FilesystemError for op on path.
func NewFilesystemError(op, path string, cause error) *FilesystemError {
	return &FilesystemError{
		BaseError: BaseError{Code: CodeFilesystem, Message: fmt.Sprintf("%s %s", op, path), Cause: cause},
		Op:        op,
		Path:      path,
	}
}

const redactedMarker = "[REDACTED]"

// Redact replaces every non-empty secret in msg.
func Redact(msg string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, redactedMarker)
	}
	return msg
}

// redactedError keeps the error chain but scrubs secrets from the rendered message.
type redactedError struct {
	msg   string
	cause error
}

func (r *redactedError) Error() string { return r.msg }
func (r *redactedError) Unwrap() error { return r.cause }

// RedactError returns err with secrets scrubbed from its message. The original error stays
// reachable through errors.Unwrap so errors.Is keeps working.
func RedactError(err error, secrets ...string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	scrubbed := Redact(msg, secrets...)
	if scrubbed == msg {
		return err
	}
	return &redactedError{msg: scrubbed, cause: err}
}
