// internal/common/camunda/worker.go
package camunda

import (
	"garment-workers/internal/common/config"
	"garment-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registration binds a task type to its job handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// WorkerPool owns the job workers opened against one Zeebe client.
type WorkerPool struct {
	client  zbc.Client
	logger  logger.Logger
	workers map[string]worker.JobWorker
}

func NewWorkerPool(client zbc.Client, log logger.Logger) *WorkerPool {
	return &WorkerPool{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for reg unless the worker is disabled in cfg.
// It reports whether a worker was opened.
func (p *WorkerPool) Start(cfg *config.Config, reg Registration) bool {
	wcfg := config.GetWorkerConfig(cfg, reg.TaskType)
	if !wcfg.Enabled {
		p.logger.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
		return false
	}

	p.workers[reg.TaskType] = p.client.NewJobWorker().
		JobType(reg.TaskType).
		Handler(reg.Handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(cfg.App.Name).
		Open()

	p.logger.Info("worker started", map[string]interface{}{
		"taskType":      reg.TaskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Active lists the task types with an open worker.
func (p *WorkerPool) Active() []string {
	out := make([]string, 0, len(p.workers))
	for taskType := range p.workers {
		out = append(out, taskType)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs.
func (p *WorkerPool) Stop() {
	for taskType, w := range p.workers {
		p.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
	}
}
