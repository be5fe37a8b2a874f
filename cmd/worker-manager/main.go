// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readiness-workers/internal/common/camunda"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring"
	"readiness-workers/pkg/registry"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	re "readiness-workers/internal/workers/readiness/resolve-eligibility"
	sm "readiness-workers/internal/workers/readiness/score-medical"
	so "readiness-workers/internal/workers/readiness/score-olq"
)

func main() {
	bootLog := logger.New("info", "console")
	defer func() { _ = bootLog.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	log := logger.NewFromConfig(cfg.Logging)
	log.Info("starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		bootLog.Fatal("scoring tables rejected", zap.Error(err))
	}
	reg, err := registry.Default()
	if err != nil {
		bootLog.Fatal("activity registry failed to load", zap.Error(err))
	}

	obs, err := observability.NewWithOptions(cfg.App.Name, observability.Options{Tracing: cfg.Tracing})
	if err != nil {
		bootLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()
	client, err := camunda.NewClientWithConfig(ctx, camunda.ClientConfigFrom(cfg.Camunda))
	if err != nil {
		bootLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("zeebe client connected", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	handlers, err := buildHandlers(cfg, engine, reg, obs, log)
	if err != nil {
		bootLog.Fatal("worker setup failed", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	for taskType, handler := range handlers {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		workers = append(workers, camunda.NewWorker(
			client.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log,
		))
	}
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	server := newServer(cfg.Metrics, client)
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("error stopping health/metrics server", map[string]interface{}{"error": err.Error()})
	}
	if err := client.Close(); err != nil {
		log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("error flushing telemetry", map[string]interface{}{"error": err.Error()})
	}
	log.Info("worker manager stopped gracefully", nil)
}

// buildHandlers creates one handler per registered task type, each checking
// its variables against the activity's input schema.
func buildHandlers(
	cfg *config.Config,
	engine *scoring.Engine,
	reg *registry.ActivityRegistry,
	obs *observability.Observability,
	log logger.Logger,
) (map[string]camunda.JobHandler, error) {
	schemaFor := func(taskType string) (*validation.SchemaValidator, error) {
		activity, ok := reg.Find(taskType)
		if !ok {
			return nil, fmt.Errorf("no activity registered for %s", taskType)
		}
		return validation.NewSchemaValidator(activity.InputSchema)
	}

	handlers := make(map[string]camunda.JobHandler, 3)

	schema, err := schemaFor(re.TaskType)
	if err != nil {
		return nil, err
	}
	handlers[re.TaskType] = re.NewHandler(
		re.LoadConfig(config.GetWorkerConfig(cfg, re.TaskType)), engine.Eligibility, schema, obs, log)

	schema, err = schemaFor(sm.TaskType)
	if err != nil {
		return nil, err
	}
	handlers[sm.TaskType] = sm.NewHandler(
		sm.LoadConfig(config.GetWorkerConfig(cfg, sm.TaskType)), engine.Medical, schema, obs, log)

	schema, err = schemaFor(so.TaskType)
	if err != nil {
		return nil, err
	}
	handlers[so.TaskType] = so.NewHandler(
		so.LoadConfig(config.GetWorkerConfig(cfg, so.TaskType)), engine.OLQ, schema, obs, log)

	return handlers, nil
}

func newServer(cfg config.MetricsConfig, client *camunda.Client) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.HealthCheck(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	if cfg.Enabled {
		mux.Handle(cfg.Path, promhttp.Handler())
	}
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
