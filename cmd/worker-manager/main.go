// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"apply-wizard/internal/common/camunda"
	"apply-wizard/internal/common/config"
	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/common/observability"
	"apply-wizard/internal/storage"

	vas "apply-wizard/internal/workers/application/validate-application-step"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := config.ValidateWorkerManager(cfg); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.Error(err))
	}
	zapLog.Info("Starting worker manager...", zap.String("env", cfg.App.Environment))

	obs := observability.New("worker-manager", log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe client ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- Storage backend for jobs that reference a session ---
	var backend storage.Backend
	var closeBackend func() error
	err = retryWithBackoff(func() error {
		var err error
		backend, closeBackend, err = storage.NewBackend(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		if err := backend.Ping(ctx); err != nil {
			closeBackend()
			return err
		}
		return nil
	}, 10, 2*time.Second, zapLog, "Storage connection")
	if err != nil {
		zapLog.Fatal("storage failed after retries", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	defer closeBackend()
	zapLog.Info("Storage connected successfully", zap.String("driver", cfg.Storage.Driver))

	// --- Workers ---
	var workers []*camunda.CamundaWorker
	if wc := config.GetWorkerConfig(cfg, vas.TaskType); wc.Enabled {
		handler := vas.NewHandler(vas.LoadConfig(cfg), backend, log)
		workers = append(workers, camunda.NewWorker(zeebe.GetClient(), vas.TaskType, wc, handler, log))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", vas.TaskType))
	}

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := backend.Ping(r.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  status,
			"storage": cfg.Storage.Driver,
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
