// internal/workers/application/validate-application-step/models.go
package validateapplicationstep

type Input struct {
	Step   string                 `json:"step"`
	Record map[string]interface{} `json:"record"`
	// SessionID selects a stored record when Record is absent.
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	IsValid          bool              `json:"isValid"`
	Step             string            `json:"step"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	SchemaViolations []string          `json:"schemaViolations,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
