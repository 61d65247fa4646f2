// cmd/wizard/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"apply-wizard/internal/common/config"
	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/common/observability"
	"apply-wizard/internal/form"
	"apply-wizard/internal/storage"
	"apply-wizard/internal/wizard"
)

var (
	configPath string
	sessionID  string
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in a job application step by step",
	Long: `wizard walks an applicant through the job application: personal info,
history and skills, each validated and stored before moving on.

Records are kept per session in the configured storage backend, so a
session can be resumed from any command.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "Session id used to namespace stored records")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(fillCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is what a command needs to work on one session.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	store   *storage.LocalStore
	session *wizard.Session
	obs     *observability.Observability
	closeFn func() error
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func openEnv(ctx context.Context, sessionName string) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log := logger.NewZapAdapter(logger.NewStderr(level))

	namespace := sessionName
	if namespace == "" {
		namespace = cfg.Storage.Namespace
	}
	store, closeFn, err := storage.OpenFromConfig(ctx, cfg.Storage, namespace, log)
	if err != nil {
		return nil, err
	}

	obs := observability.New(cfg.App.Name, log)
	session := wizard.NewSession(store,
		wizard.WithLogger(log),
		wizard.WithRecorder(observability.NewStepRecorder(obs)),
	)
	log.Debug("session opened", map[string]interface{}{
		"driver":    cfg.Storage.Driver,
		"namespace": store.Namespace(),
	})

	return &env{cfg: cfg, log: log, store: store, session: session, obs: obs, closeFn: closeFn}, nil
}

func (e *env) Close() {
	e.obs.Shutdown()
	if err := e.closeFn(); err != nil {
		e.log.Warn("failed to close storage", map[string]interface{}{"error": err})
	}
}

// selectStep moves the session to the step named by storage key, route or
// the last route segment.
func selectStep(s *wizard.Session, name string) error {
	for i, st := range s.Navigator().Steps() {
		if strings.EqualFold(st.Key, name) || st.Route == name || path.Base(st.Route) == name {
			return s.Select(i)
		}
	}
	return errors.NewStepNotFoundError(name)
}

// formFor selects the named step and returns its initialized controller.
func formFor(ctx context.Context, e *env, name string) (*form.Controller, error) {
	if err := selectStep(e.session, name); err != nil {
		return nil, err
	}
	c, err := e.session.Current(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("step %q has no form", name)
	}
	if c.State() == form.StateLoading {
		return nil, errors.NewFormNotReadyError(name, c.State().String())
	}
	return c, nil
}
