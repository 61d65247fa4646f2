// Package errors provides standardized error handling for the wizard and for
// BPMN workflow integration of the step validator.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeStepValidationFailed ErrorCode = "STEP_VALIDATION_FAILED"
	ErrCodeStepNotFound         ErrorCode = "STEP_NOT_FOUND"

	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStoreReadFailed  ErrorCode = "STORE_READ_FAILED"
	ErrCodeStoreWriteFailed ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeRecordDecode     ErrorCode = "RECORD_DECODE_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"

	ErrCodeInvalidFieldPath     ErrorCode = "INVALID_FIELD_PATH"
	ErrCodeListIndexOutOfRange  ErrorCode = "LIST_INDEX_OUT_OF_RANGE"
	ErrCodeFormNotReady         ErrorCode = "FORM_NOT_READY"
	ErrCodeParseError           ErrorCode = "PARSE_ERROR"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is sees through the wrapper.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another StandardError by code.
func (e *StandardError) Is(target error) bool {
	var other *StandardError
	if stderrors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// WithMetadata attaches a metadata entry and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewStepValidationFailedError reports the failing field paths of a step.
func NewStepValidationFailedError(step string, fields []string) *StandardError {
	return newError(ErrCodeStepValidationFailed,
		fmt.Sprintf("Step %q has invalid fields", step),
		strings.Join(fields, ", "), false, nil).
		WithMetadata("step", step).
		WithMetadata("fields", fields)
}

func NewStepNotFoundError(step string) *StandardError {
	return newError(ErrCodeStepNotFound, "Unknown wizard step", step, false, nil)
}

func NewStoreUnavailableError(err error) *StandardError {
	return newError(ErrCodeStoreUnavailable, "Storage backend unavailable", errString(err), true, err)
}

func NewStoreReadFailedError(key string, err error) *StandardError {
	return newError(ErrCodeStoreReadFailed, "Failed to read stored record", errString(err), true, err).
		WithMetadata("key", key)
}

func NewStoreWriteFailedError(key string, err error) *StandardError {
	return newError(ErrCodeStoreWriteFailed, "Failed to write record", errString(err), true, err).
		WithMetadata("key", key)
}

func NewRecordDecodeError(key string, err error) *StandardError {
	return newError(ErrCodeRecordDecode, "Stored record is not a JSON object", errString(err), false, err).
		WithMetadata("key", key)
}

func NewInvalidFieldPathError(path string, err error) *StandardError {
	return newError(ErrCodeInvalidFieldPath, "Invalid field path", path, false, err)
}

func NewListIndexOutOfRangeError(list string, index, length int) *StandardError {
	return newError(ErrCodeListIndexOutOfRange,
		fmt.Sprintf("List %q has no element %d", list, index),
		fmt.Sprintf("length %d", length), false, nil)
}

func NewFormNotReadyError(step, state string) *StandardError {
	return newError(ErrCodeFormNotReady,
		fmt.Sprintf("Form %q is not editable", step),
		"state "+state, false, nil)
}

func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Zeebe broker unavailable", errString(err), true, err).
		WithMetadata("operation", operation)
}

func NewBrokerTimeoutError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerTimeout, "Zeebe request timed out", errString(err), true, err).
		WithMetadata("operation", operation)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse input", errString(err), false, err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeStepValidationFailed: "STEP_VALIDATION_FAILED",
	ErrCodeStepNotFound:         "STEP_NOT_FOUND",
	ErrCodeStoreUnavailable:     "STORE_UNAVAILABLE",
	ErrCodeStoreReadFailed:      "STORE_READ_FAILED",
	ErrCodeStoreWriteFailed:     "STORE_WRITE_FAILED",
	ErrCodeRecordDecode:         "RECORD_DECODE_FAILED",
	ErrCodeParseError:           "PARSE_ERROR",
}

// GetRetryCount returns how many times a job failing with code is retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable,
		ErrCodeStoreReadFailed,
		ErrCodeStoreWriteFailed,
		ErrCodeBrokerUnavailable,
		ErrCodeBrokerTimeout:
		return 3
	default:
		return 0 // input errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError into its BPMN form.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// CodeOf extracts the code of a StandardError anywhere in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "STORE") || strings.HasPrefix(codeStr, "RECORD"):
		return "STORAGE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID") ||
		strings.Contains(codeStr, "OUT_OF_RANGE"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "BROKER"):
		return "INTEGRATION"
	case strings.HasPrefix(codeStr, "STEP") || strings.HasPrefix(codeStr, "FORM"):
		return "WIZARD"
	case codeStr == string(ErrCodeParseError):
		return "INPUT"
	default:
		return "OTHER"
	}
}
