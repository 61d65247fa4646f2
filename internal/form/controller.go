// Package form drives one wizard step: it loads the step's stored record into
// a live model, applies edits, validates on submit and writes the record back.
package form

import (
	"context"
	"strconv"
	"strings"
	"time"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/common/metrics"
	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
	"apply-wizard/internal/steps"
	"apply-wizard/internal/storage"
	"apply-wizard/internal/widget"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateAdvanced
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Store is the persistence the controller needs. *storage.LocalStore
// satisfies it.
type Store interface {
	Load(ctx context.Context, key string) (models.Record, error)
	Save(ctx context.Context, key string, rec models.Record) error
}

// Recorder receives submission and reset events.
type Recorder interface {
	StepSubmitted(ctx context.Context, step, outcome string, errorCount int, validation time.Duration)
	StepReset(ctx context.Context, step string)
}

type nopRecorder struct{}

func (nopRecorder) StepSubmitted(context.Context, string, string, int, time.Duration) {}
func (nopRecorder) StepReset(context.Context, string)                               {}

// Controller is not safe for concurrent use.
type Controller struct {
	def      *steps.Definition
	store    Store
	logger   logger.Logger
	recorder Recorder
	advance  func()

	state     State
	record    models.Record
	errs      schema.Errors
	submitted bool
}

type Option func(*Controller)

func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.logger = log }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithAdvance registers the callback run after a successful submit.
func WithAdvance(fn func()) Option {
	return func(c *Controller) { c.advance = fn }
}

func New(def *steps.Definition, store Store, opts ...Option) *Controller {
	c := &Controller{
		def:      def,
		store:    store,
		logger:   logger.NewNoOpLogger(),
		recorder: nopRecorder{},
		state:    StateLoading,
		record:   def.Defaults(),
		errs:     schema.Errors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithFields(map[string]interface{}{"step": def.Key})
	return c
}

// Initialize loads the stored record over the defaults. It returns false
// while the store is not ready yet; call it again later. Once the form is
// past Loading it does nothing.
func (c *Controller) Initialize(ctx context.Context) (bool, error) {
	if c.state != StateLoading {
		return true, nil
	}

	stored, err := c.store.Load(ctx, c.def.Key)
	if errors.Is(err, storage.ErrNotReady) {
		c.logger.Debug("store not ready, form stays loading", nil)
		return false, nil
	}
	if err != nil {
		c.logger.Error("failed to load step record", map[string]interface{}{"error": err})
		return false, err
	}

	rec := c.def.Defaults()
	for k, v := range stored.Clone() {
		rec[k] = v
	}
	for _, path := range c.def.ExpandDateFields(rec) {
		raw := rec.String(path)
		if raw == "" {
			continue
		}
		if normalized, ok := widget.NormalizeDate(raw); ok {
			_ = rec.Set(path, normalized)
		}
	}

	c.record = rec
	c.setState(StateReady)
	return true, nil
}

// UpdateField sets one value. After the first submit attempt the field, and
// any field whose rule depends on it, is validated again.
func (c *Controller) UpdateField(path string, value interface{}) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if err := c.checkListIndex(path); err != nil {
		return err
	}
	if err := c.record.Set(path, value); err != nil {
		return errors.NewInvalidFieldPathError(path, err)
	}
	c.revalidate(append([]string{path}, c.dependents(path)...)...)
	return nil
}

// checkListIndex rejects element paths past the end of a repeated
// sub-record. Lists grow only through AppendListItem, which keeps the gate.
func (c *Controller) checkListIndex(path string) error {
	segments := models.SplitPath(path)
	if len(segments) < 2 {
		return nil
	}
	if _, ok := c.def.Schema.FindList(segments[0]); !ok {
		return nil
	}
	idx, err := strconv.Atoi(segments[1])
	if err != nil {
		return errors.NewInvalidFieldPathError(path, models.ErrInvalidPath)
	}
	if n := len(c.record.List(segments[0])); idx < 0 || idx >= n {
		return errors.NewListIndexOutOfRangeError(segments[0], idx, n)
	}
	return nil
}

// AppendListItem adds an element to a repeated sub-record and turns its gate
// on. A nil element appends a blank one.
func (c *Controller) AppendListItem(list string, element map[string]interface{}) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	l, ok := c.def.Schema.FindList(list)
	if !ok {
		return errors.NewInvalidFieldPathError(list, models.ErrInvalidPath)
	}
	if element == nil {
		element = c.blankElement(list)
	}

	items := append(copyList(c.record.List(list)), map[string]interface{}(models.Record(element).Clone()))
	c.record[list] = items
	if l.Gate != "" {
		c.record[l.Gate] = true
	}
	c.revalidate(list, l.Gate)
	return nil
}

// RemoveListItem deletes the element at index. Removing the first element
// turns the gate off even when elements remain.
func (c *Controller) RemoveListItem(list string, index int) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	l, ok := c.def.Schema.FindList(list)
	if !ok {
		return errors.NewInvalidFieldPathError(list, models.ErrInvalidPath)
	}
	items := c.record.List(list)
	if index < 0 || index >= len(items) {
		return errors.NewListIndexOutOfRangeError(list, index, len(items))
	}

	out := make([]interface{}, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	c.record[list] = out
	if index == 0 && l.Gate != "" {
		c.record[l.Gate] = false
	}
	c.revalidate(list, l.Gate)
	return nil
}

// Submit validates the whole record. On success the record is saved, the
// form moves to Advanced and the advance callback runs. Validation failures
// are reported through Errors, not as an error.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	if err := c.requireReady(); err != nil {
		return false, err
	}
	c.setState(StateSubmitting)
	c.submitted = true

	start := time.Now()
	errs := c.def.Schema.Validate(c.record)
	elapsed := time.Since(start)

	if len(errs) > 0 {
		c.errs = errs
		c.setState(StateReady)
		c.recorder.StepSubmitted(ctx, c.def.Key, metrics.OutcomeInvalid, len(errs), elapsed)
		c.logger.Info("step submission rejected", map[string]interface{}{
			"fields": errs.Fields(),
		})
		return false, nil
	}

	if err := c.store.Save(ctx, c.def.Key, c.record.Clone()); err != nil {
		c.setState(StateReady)
		c.recorder.StepSubmitted(ctx, c.def.Key, metrics.OutcomeFailed, 0, elapsed)
		c.logger.Error("failed to save step record", map[string]interface{}{"error": err})
		return false, err
	}

	c.errs = schema.Errors{}
	c.setState(StateAdvanced)
	c.recorder.StepSubmitted(ctx, c.def.Key, metrics.OutcomeAdvanced, 0, elapsed)
	c.logger.Info("step submitted", nil)
	if c.advance != nil {
		c.advance()
	}
	return true, nil
}

// Reset stores an empty record and returns the form to its defaults.
func (c *Controller) Reset(ctx context.Context) error {
	if c.state != StateReady && c.state != StateAdvanced {
		return errors.NewFormNotReadyError(c.def.Key, c.state.String())
	}
	if err := c.store.Save(ctx, c.def.Key, models.Record{}); err != nil {
		c.logger.Error("failed to reset step record", map[string]interface{}{"error": err})
		return err
	}

	c.record = c.def.Defaults()
	c.errs = schema.Errors{}
	c.submitted = false
	c.setState(StateReady)
	c.recorder.StepReset(ctx, c.def.Key)
	return nil
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Step() *steps.Definition { return c.def }

// Record returns a copy of the live record.
func (c *Controller) Record() models.Record { return c.record.Clone() }

func (c *Controller) Value(path string) (interface{}, bool) { return c.record.Get(path) }

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() schema.Errors { return c.errs.Clone() }

// Submitted reports whether a submit has been attempted since the last reset.
func (c *Controller) Submitted() bool { return c.submitted }

func (c *Controller) requireReady() error {
	if c.state != StateReady {
		return errors.NewFormNotReadyError(c.def.Key, c.state.String())
	}
	return nil
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("form state changed", map[string]interface{}{
		"from": c.state.String(),
		"to":   s.String(),
	})
	c.state = s
}

// revalidate refreshes the error entries at and below each prefix. It does
// nothing before the first submit attempt.
func (c *Controller) revalidate(prefixes ...string) {
	if !c.submitted {
		return
	}
	fresh := c.def.Schema.Validate(c.record)
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		for path := range c.errs {
			if covers(prefix, path) {
				delete(c.errs, path)
			}
		}
		for path, msg := range fresh {
			if covers(prefix, path) {
				c.errs[path] = msg
			}
		}
	}
}

// dependents lists paths whose rules read path: the companions of a
// discriminator and the list behind a gate.
func (c *Controller) dependents(path string) []string {
	var out []string
	for _, cond := range c.def.Schema.Conditionals {
		if cond.Discriminator != path {
			continue
		}
		for _, fields := range cond.Requires {
			for _, f := range fields {
				out = append(out, f.Name)
			}
		}
	}
	for _, l := range c.def.Schema.Lists {
		if l.Gate == path {
			out = append(out, l.Name)
		}
	}
	return out
}

func (c *Controller) blankElement(list string) map[string]interface{} {
	element := map[string]interface{}{}
	if layout, ok := c.def.ListLayout(list); ok {
		for _, in := range layout.Inputs {
			element[in.Path] = ""
		}
	}
	return element
}

func covers(prefix, path string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+".")
}

func copyList(items []interface{}) []interface{} {
	out := make([]interface{}, len(items), len(items)+1)
	copy(out, items)
	return out
}
