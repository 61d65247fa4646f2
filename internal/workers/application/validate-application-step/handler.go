// internal/workers/application/validate-application-step/handler.go
package validateapplicationstep

import (
	"context"
	"encoding/json"
	"time"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/common/metrics"
	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
	"apply-wizard/internal/steps"
	"apply-wizard/internal/storage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-application-step"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	backend      storage.Backend
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the handler. backend may be nil, in which case jobs must
// carry the record inline.
func NewHandler(config *Config, backend storage.Backend, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		backend:      backend,
		errorHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	def, ok := steps.Lookup(input.Step)
	if !ok {
		return nil, errors.NewStepNotFoundError(input.Step)
	}

	rec, err := h.resolveRecord(ctx, def.Key, input)
	if err != nil {
		return nil, err
	}

	errs := def.Schema.Validate(rec)
	output := &Output{
		IsValid:          len(errs) == 0,
		Step:             def.Key,
		ValidationErrors: []ValidationError{},
	}
	for _, field := range errs.Fields() {
		output.ValidationErrors = append(output.ValidationErrors, ValidationError{
			Field:   field,
			Code:    schema.CodeFor(errs[field]),
			Message: errs[field],
		})
	}

	if h.config.CrossCheck {
		docValid, violations, err := def.Schema.CheckDocument(rec)
		if err != nil {
			h.logger.Warn("json schema check failed", map[string]interface{}{"error": err})
		} else {
			output.SchemaViolations = violations
			if docValid != output.IsValid {
				h.logger.Warn("json schema disagrees with step rules", map[string]interface{}{
					"step":       def.Key,
					"rulesValid": output.IsValid,
					"docValid":   docValid,
				})
			}
		}
	}

	h.logger.Info("validation completed", map[string]interface{}{
		"step":       def.Key,
		"isValid":    output.IsValid,
		"errorCount": len(output.ValidationErrors),
	})

	if !output.IsValid {
		return output, errors.NewStepValidationFailedError(def.Key, errs.Fields())
	}
	return output, nil
}

// resolveRecord prefers the inline record and falls back to the session's
// stored record. A session with nothing stored validates as an empty record
// and is left untouched.
func (h *Handler) resolveRecord(ctx context.Context, key string, input *Input) (models.Record, error) {
	if input.Record != nil || input.SessionID == "" || h.backend == nil {
		return models.Record(input.Record), nil
	}
	store := storage.NewLocalStore(h.backend, storage.WithNamespace(input.SessionID), storage.WithLogger(h.logger))
	if err := store.Open(ctx); err != nil {
		return nil, err
	}
	rec, _, err := store.Peek(ctx, key)
	return rec, err
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		h.failJob(ctx, client, job, err)
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code, _ := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
