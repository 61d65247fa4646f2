// Package wizard ties the navigator to the per-step form controllers and
// the shared local store.
package wizard

import (
	"context"

	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/form"
	"apply-wizard/internal/models"
	"apply-wizard/internal/navigator"
	"apply-wizard/internal/schema"
	"apply-wizard/internal/steps"
)

// Session is one applicant's pass through the wizard. Like the controllers
// it hands out, it is not safe for concurrent use.
type Session struct {
	store    form.Store
	catalog  []steps.Step
	nav      *navigator.Navigator
	logger   logger.Logger
	recorder form.Recorder

	controller *form.Controller
}

type Option func(*Session)

func WithLogger(log logger.Logger) Option {
	return func(s *Session) { s.logger = log }
}

func WithRecorder(r form.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

func NewSession(store form.Store, opts ...Option) *Session {
	catalog := steps.Catalog()
	navSteps := make([]navigator.Step, len(catalog))
	for i, st := range catalog {
		navSteps[i] = navigator.Step{Title: st.Title, Route: st.Route}
		if st.Form != nil {
			navSteps[i].Key = st.Form.Key
		}
	}

	s := &Session{
		store:   store,
		catalog: catalog,
		nav:     navigator.New(navSteps),
		logger:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Navigator() *navigator.Navigator { return s.nav }

// Step returns the catalog entry of the active step.
func (s *Session) Step() steps.Step { return s.catalog[s.nav.Current()] }

// Current returns the controller of the active step, building and
// initializing it on first use. Steps without a form return nil. A
// controller still Loading is initialized again on every call.
func (s *Session) Current(ctx context.Context) (*form.Controller, error) {
	def := s.Step().Form
	if def == nil {
		return nil, nil
	}
	if s.controller == nil {
		opts := []form.Option{
			form.WithLogger(s.logger),
			form.WithAdvance(s.advance),
		}
		if s.recorder != nil {
			opts = append(opts, form.WithRecorder(s.recorder))
		}
		s.controller = form.New(def, s.store, opts...)
	}
	if _, err := s.controller.Initialize(ctx); err != nil {
		return s.controller, err
	}
	return s.controller, nil
}

// Select jumps to step i. The step's form is rebuilt from the store.
func (s *Session) Select(i int) error {
	if err := s.nav.SelectStep(i); err != nil {
		return err
	}
	s.controller = nil
	return nil
}

func (s *Session) SelectRoute(route string) error {
	if err := s.nav.SelectRoute(route); err != nil {
		return err
	}
	s.controller = nil
	return nil
}

func (s *Session) advance() {
	from := s.nav.CurrentStep().Route
	if s.nav.Advance() {
		s.controller = nil
	}
	s.logger.Info("wizard advanced", map[string]interface{}{
		"from": from,
		"to":   s.nav.CurrentStep().Route,
	})
}

// Review loads the stored record of every step with a form, keyed by
// storage key.
func (s *Session) Review(ctx context.Context) (map[string]models.Record, error) {
	out := map[string]models.Record{}
	for _, def := range steps.Definitions() {
		rec, err := s.store.Load(ctx, def.Key)
		if err != nil {
			return nil, err
		}
		out[def.Key] = rec
	}
	return out, nil
}

// Application returns the stored records as the typed application.
func (s *Session) Application(ctx context.Context) (*models.Application, error) {
	records, err := s.Review(ctx)
	if err != nil {
		return nil, err
	}
	return models.AssembleApplication(records)
}

// Complete validates every stored step record. The map holds the failing
// steps only.
func (s *Session) Complete(ctx context.Context) (bool, map[string]schema.Errors, error) {
	records, err := s.Review(ctx)
	if err != nil {
		return false, nil, err
	}
	failing := map[string]schema.Errors{}
	for _, def := range steps.Definitions() {
		if errs := def.Schema.Validate(records[def.Key]); len(errs) > 0 {
			failing[def.Key] = errs
		}
	}
	return len(failing) == 0, failing, nil
}
