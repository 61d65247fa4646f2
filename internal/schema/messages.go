package schema

import (
	"fmt"
	"strings"
)

// Issue codes reported next to messages by the job worker.
const (
	CodeRequired      = "REQUIRED"
	CodeTooSmall      = "TOO_SMALL"
	CodeInvalidEmail  = "INVALID_EMAIL"
	CodeInvalidNumber = "INVALID_NUMBER"
	CodeInvalidEnum   = "INVALID_ENUM"
	CodeInvalidType   = "INVALID_TYPE"
)

const (
	msgRequired      = "Required"
	msgInvalidEmail  = "Invalid email"
	msgInvalidNumber = "Expected number"
	msgExpectArray   = "Expected array"
	msgExpectObject  = "Expected object"
	msgExpectBool    = "Expected boolean"
)

func msgTooSmall(min int) string {
	return fmt.Sprintf("String must contain at least %d character(s)", min)
}

func msgInvalidEnum(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "Invalid enum value. Expected " + strings.Join(quoted, " | ")
}

// CodeFor classifies a validation message.
func CodeFor(message string) string {
	switch {
	case message == msgRequired:
		return CodeRequired
	case strings.HasPrefix(message, "String must contain at least"):
		return CodeTooSmall
	case message == msgInvalidEmail:
		return CodeInvalidEmail
	case message == msgInvalidNumber:
		return CodeInvalidNumber
	case strings.HasPrefix(message, "Invalid enum value"):
		return CodeInvalidEnum
	default:
		return CodeInvalidType
	}
}
