package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tuanona/kasir-bot/internal/ledger"
	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReceipt = "jobs:receipt"
	QueueClosing = "jobs:closing"

	JobReceipt = "receipt"
	JobClosing = "closing"

	// MaxAttempts is how many times a job runs before it is moved to the DLQ.
	MaxAttempts = 3

	popTimeout = 5 * time.Second
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// ClosingJobPayload carries the report cleared by an administrator reset.
type ClosingJobPayload struct {
	Report     ledger.Report `json:"report"`
	ClosedAt   time.Time     `json:"closed_at"`
	OperatorID int64         `json:"operator_id"`
}

// Processor handles the payload of one job type. A returned error makes
// the job eligible for retry.
type Processor interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, payload json.RawMessage) error

func (f ProcessorFunc) Process(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReceipt queues PDF generation for a completed sale.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, sale model.Sale) error {
	return d.enqueue(ctx, QueueReceipt, JobReceipt, sale)
}

// EnqueueClosing queues the export of a cleared ledger.
func (d *Dispatcher) EnqueueClosing(ctx context.Context, p ClosingJobPayload) error {
	return d.enqueue(ctx, QueueClosing, JobClosing, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dispatcher: marshal %s payload: %w", jobType, err)
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("dispatcher: marshal job: %w", err)
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming every queue that
// has a processor. The returned WaitGroup completes once all workers have
// observed ctx cancellation.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, processors map[string]Processor, numWorkers int) *sync.WaitGroup {
	queues := make([]string, 0, len(processors))
	for q := range processors {
		queues = append(queues, q)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, processors, queues, id)
		}(i)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", queues).Msg("worker pool started")
	return &wg
}

func runWorker(ctx context.Context, rdb *redis.Client, processors map[string]Processor, queues []string, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}

		// Blocking pop; waits up to popTimeout then loops to check ctx.
		result, err := rdb.BRPop(ctx, popTimeout, queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		processJob(ctx, rdb, processors, result[0], result[1])
	}
}

// processJob runs one raw job and applies the retry policy.
func processJob(ctx context.Context, rdb *redis.Client, processors map[string]Processor, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		SendToDLQ(ctx, rdb, queue, "", quoted, "invalid envelope: "+err.Error(), 0)
		return
	}

	p, ok := processors[queue]
	if !ok {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "no processor for queue", job.Attempts)
		return
	}

	job.Attempts++
	err := p.Process(ctx, job.Payload)
	if err == nil {
		log.Debug().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("job done")
		return
	}

	var perm *PermanentError
	if errors.As(err, &perm) || job.Attempts >= MaxAttempts {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Int("attempt", job.Attempts).Msg("job failed, requeueing")
	if err := push(ctx, rdb, queue, job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("requeue failed")
	}
}

// PermanentError marks a failure that retrying cannot fix (bad payload).
type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func permanent(err error) error { return &PermanentError{Err: err} }
