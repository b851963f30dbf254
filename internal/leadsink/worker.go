package leadsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/logger"
)

// WorkerConfig combines the config interfaces the worker needs.
type WorkerConfig interface {
	config.RedisConfig
	config.CRMConfig
}

// Worker consumes CRM-forward tasks. Failed deliveries are retried by asynq
// with its default backoff.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	crmURL string
	http   *http.Client
	log    *logger.Logger
}

// NewWorker builds the asynq worker from configuration.
func NewWorker(cfg WorkerConfig, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}
	if !cfg.IsCRMForwardEnabled() {
		return nil, fmt.Errorf("CRM forward url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		crmURL: cfg.GetCRMForwardURL(),
		http:   &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
	w.mux.HandleFunc(TaskForwardLead, w.handleForwardLead)

	return w, nil
}

func (w *Worker) handleForwardLead(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseForwardLeadPayload(task)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.crmURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("crm request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("crm returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	w.log.Info("lead forwarded to crm", "lead_id", payload.LeadID)
	return nil
}

// Run starts the worker and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("starting asynq server: %w", err)
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
