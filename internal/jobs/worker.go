package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sjperalta/clientpulse-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

type namedJob struct {
	name string
	run  Job
}

// JobRun summarizes the executions of one named job
type JobRun struct {
	Name         string    `json:"name"`
	Runs         int64     `json:"runs"`
	Failures     int64     `json:"failures"`
	LastRun      time.Time `json:"last_run"`
	LastDuration string    `json:"last_duration"`
	LastError    string    `json:"last_error,omitempty"`
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int      `json:"active_jobs"`
	CompletedJobs int64    `json:"completed_jobs"`
	FailedJobs    int64    `json:"failed_jobs"`
	QueueLength   int      `json:"queue_length"`
	Workers       int      `json:"workers"`
	Jobs          []JobRun `json:"jobs"`
}

// Worker runs queued jobs on a fixed pool of goroutines and recurring jobs on tickers
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan namedJob
	workers int
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	stats  WorkerStats
	runs   map[string]*JobRun
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan namedJob, 100),
		workers: numWorkers,
		log:     logger.With("worker"),
		runs:    make(map[string]*JobRun),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process()
	}

	return w
}

// Enqueue adds a job to the pool. When the queue is full the job runs on the caller's goroutine.
func (w *Worker) Enqueue(name string, job Job) {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		w.log.Warn("worker stopped, dropping job", slog.String("job", name))
		return
	}
	select {
	case w.queue <- namedJob{name: name, run: job}:
		w.mu.RUnlock()
	default:
		w.mu.RUnlock()
		w.log.Warn("queue full, running job synchronously", slog.String("job", name))
		w.execute(namedJob{name: name, run: job})
	}
}

func (w *Worker) process() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.execute(job)
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(namedJob{name: name, run: job}, interval, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(namedJob{name: name, run: job}, interval, true)
}

func (w *Worker) schedule(job namedJob, interval time.Duration, immediate bool) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.execute(job)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.execute(job)
			}
		}
	}()
	w.log.Info("scheduled job", slog.String("job", job.name), slog.Duration("interval", interval))
}

// execute runs one job, recovering panics and recording the outcome
func (w *Worker) execute(job namedJob) {
	w.trackStart()
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = job.run(w.ctx)
	}()

	elapsed := time.Since(start)
	w.trackEnd(job.name, start, elapsed, err)

	attrs := []any{slog.String("job", job.name), slog.Duration("elapsed", elapsed)}
	if err != nil {
		w.log.Error("job failed", append(attrs, slog.Any("error", err))...)
		return
	}
	w.log.Info("job completed", attrs...)
}

// Shutdown stops accepting jobs and waits for running ones to finish
func (w *Worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.cancel()
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.Workers = w.workers
	stats.Jobs = make([]JobRun, 0, len(w.runs))
	for _, r := range w.runs {
		stats.Jobs = append(stats.Jobs, *r)
	}
	slices.SortFunc(stats.Jobs, func(a, b JobRun) int { return strings.Compare(a.Name, b.Name) })
	return stats
}

func (w *Worker) trackStart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.ActiveJobs++
}

// trackEnd counts every finished job as completed; failures are also counted in FailedJobs
func (w *Worker) trackEnd(name string, start time.Time, elapsed time.Duration, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stats.ActiveJobs--
	w.stats.CompletedJobs++

	run, ok := w.runs[name]
	if !ok {
		run = &JobRun{Name: name}
		w.runs[name] = run
	}
	run.Runs++
	run.LastRun = start
	run.LastDuration = elapsed.String()
	run.LastError = ""
	if err != nil {
		w.stats.FailedJobs++
		run.Failures++
		run.LastError = err.Error()
	}
}
