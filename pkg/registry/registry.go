// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/steps"
)

// ValidateStepTaskType matches the validate-application-step worker.
const ValidateStepTaskType = "validate-application-step"

// Build describes the current step catalog.
func Build(version string) *StepRegistry {
	reg := &StepRegistry{
		Version:     version,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Steps:       []StepDescriptor{},
	}

	var formKeys []interface{}
	for _, s := range steps.Catalog() {
		d := StepDescriptor{
			ID:    path.Base(s.Route),
			Title: s.Title,
			Route: s.Route,
		}
		if s.Form != nil {
			d.ID = s.Form.Key
			d.StorageKey = s.Form.Key
			d.Schema = s.Form.Schema.JSONSchema()
			formKeys = append(formKeys, s.Form.Key)
		}
		reg.Steps = append(reg.Steps, d)
	}

	reg.Activities = []Activity{validateStepActivity(formKeys)}
	return reg
}

func validateStepActivity(formKeys []interface{}) Activity {
	return Activity{
		ID:          ValidateStepTaskType,
		DisplayName: "Validate Application Step",
		Description: "Validates one step record of the job application wizard",
		TaskType:    ValidateStepTaskType,
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"step":      map[string]interface{}{"type": "string", "enum": formKeys},
				"record":    map[string]interface{}{"type": "object"},
				"sessionId": map[string]interface{}{"type": "string"},
			},
			"required": []interface{}{"step"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"isValid":          map[string]interface{}{"type": "boolean"},
				"step":             map[string]interface{}{"type": "string"},
				"validationErrors": map[string]interface{}{"type": "array"},
			},
		},
		ErrorCodes: []string{
			string(errors.ErrCodeStepValidationFailed),
			string(errors.ErrCodeStepNotFound),
			string(errors.ErrCodeParseError),
			string(errors.ErrCodeStoreUnavailable),
			string(errors.ErrCodeStoreReadFailed),
			string(errors.ErrCodeRecordDecode),
		},
		Timeout: "10s",
		Retries: errors.GetRetryCount(errors.ErrCodeStoreUnavailable),
	}
}

func LoadRegistry(path string) (*StepRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg StepRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// WriteRegistry writes reg as indented JSON, creating parent directories.
func WriteRegistry(path string, reg *StepRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
