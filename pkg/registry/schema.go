// pkg/registry/schema.go
package registry

// StepRegistry describes the wizard's steps and the job worker that
// validates them, for consumers outside this module.
type StepRegistry struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Steps       []StepDescriptor `json:"steps"`
	Activities  []Activity       `json:"activities"`
}

type StepDescriptor struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Route      string                 `json:"route"`
	StorageKey string                 `json:"storageKey,omitempty"`
	Schema     map[string]interface{} `json:"schema,omitempty"`
}

type Activity struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	TaskType     string                 `json:"taskType"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
}
