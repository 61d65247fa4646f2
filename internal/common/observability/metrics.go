package observability

import (
	"context"
	"time"

	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	stepCounter    otelmetric.Int64Counter
	stepValidation otelmetric.Float64Histogram
}

// New registers an otel meter provider exporting through the default
// prometheus registry. On exporter failure the returned value records
// nothing.
func New(serviceName string, log logger.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return newWithProvider(provider, serviceName)
}

func newWithProvider(provider *metric.MeterProvider, serviceName string) *Observability {
	meter := provider.Meter(serviceName)

	stepCounter, _ := meter.Int64Counter(
		"steps.submitted",
		otelmetric.WithDescription("Number of step submissions"),
	)

	stepValidation, _ := meter.Float64Histogram(
		"steps.validation_duration",
		otelmetric.WithDescription("Step validation duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		stepCounter:    stepCounter,
		stepValidation: stepValidation,
	}
}

func (o *Observability) RecordStepSubmitted(ctx context.Context, step, outcome string) {
	if o.stepCounter != nil {
		o.stepCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("step", step),
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordValidationDuration(ctx context.Context, step string, duration time.Duration) {
	if o.stepValidation != nil {
		o.stepValidation.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("step", step),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}

// StepRecorder reports form controller activity to both the prometheus
// counters and the otel instruments.
type StepRecorder struct {
	obs *Observability
}

func NewStepRecorder(obs *Observability) *StepRecorder {
	if obs == nil {
		obs = &Observability{}
	}
	return &StepRecorder{obs: obs}
}

func (r *StepRecorder) StepSubmitted(ctx context.Context, step, outcome string, errorCount int, validation time.Duration) {
	metrics.StepSubmissions.WithLabelValues(step, outcome).Inc()
	if errorCount > 0 {
		metrics.ValidationErrors.WithLabelValues(step).Add(float64(errorCount))
	}
	r.obs.RecordStepSubmitted(ctx, step, outcome)
	r.obs.RecordValidationDuration(ctx, step, validation)
}

func (r *StepRecorder) StepReset(ctx context.Context, step string) {
	metrics.StepResets.WithLabelValues(step).Inc()
}
