// Package worker renders swatch sheets in parallel.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
)

// Generator renders one sheet. swatch.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, base colorconv.Color, force bool, suffix string) (path string, err error)
}

// Task is a single sheet to render.
type Task struct {
	Base   colorconv.Color
	Force  bool
	Suffix string
}

// Result is the outcome of a Task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool runs tasks on a fixed number of goroutines.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a pool. Workers defaults to 1.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

type indexedTask struct {
	index int
	task  Task
}

type indexedResult struct {
	index  int
	result Result
}

// Run executes tasks and returns one result per task, in task order.
// Tasks that were never started because ctx was cancelled carry ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan indexedTask, len(tasks))
	resultCh := make(chan indexedResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	// The channel is buffered for every task, so feeding never blocks.
	for i, task := range tasks {
		taskCh <- indexedTask{index: i, task: task}
	}
	close(taskCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, len(tasks))
	completed, failed := 0, 0
	for r := range resultCh {
		results[r.index] = r.result

		completed++
		if r.result.Err != nil {
			failed++
		}
		if p.onProgress != nil {
			p.onProgress(completed, len(tasks), failed)
		}
	}

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan indexedTask, results chan<- indexedResult) {
	for it := range tasks {
		if err := ctx.Err(); err != nil {
			results <- indexedResult{index: it.index, result: Result{Task: it.task, Err: err}}
			continue
		}

		start := time.Now()
		path, err := p.generator.Generate(ctx, it.task.Base, it.task.Force, it.task.Suffix)

		results <- indexedResult{
			index: it.index,
			result: Result{
				Task:    it.task,
				Path:    path,
				Err:     err,
				Elapsed: time.Since(start),
			},
		}
	}
}
