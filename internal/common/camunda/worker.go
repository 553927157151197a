package camunda

import (
	"context"
	"sync"

	"crop-planner/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler handles one activated job and reports the outcome to the broker
// itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Workers owns the job workers opened by the manager.
type Workers struct {
	client zbc.Client
	logger *zap.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, logger *zap.Logger) *Workers {
	return &Workers{
		client:  client,
		logger:  logger,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless wcfg disables it. It reports
// whether a worker was opened.
func (w *Workers) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) bool {
	if !wcfg.Enabled {
		w.logger.Info("worker disabled", zap.String("taskType", taskType))
		return false
	}

	jw := w.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	w.mu.Lock()
	w.workers[taskType] = jw
	w.mu.Unlock()

	w.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return true
}

// Running lists the task types with an open worker.
func (w *Workers) Running() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.workers))
	for t := range w.workers {
		out = append(out, t)
	}
	return out
}

// Stop closes every worker, waiting for in-flight jobs, until ctx expires.
func (w *Workers) Stop(ctx context.Context) {
	w.mu.Lock()
	open := w.workers
	w.workers = make(map[string]worker.JobWorker)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for taskType, jw := range open {
			w.logger.Info("stopping worker", zap.String("taskType", taskType))
			jw.Close()
			jw.AwaitClose()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("workers did not stop before deadline", zap.Error(ctx.Err()))
	}
}
