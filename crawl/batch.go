package crawl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/pagesift/pagesift"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of crawls a Runner executes at
// once.
const DefaultConcurrency = 4

// Runner executes independent crawls for a list of start URLs. Crawls
// run concurrently; each owns its session, visited set, and record
// accumulator, and only ever updates its own task entry.
type Runner struct {
	Crawler *Crawler

	// Tasks, when set, receives per-crawl bookkeeping: a task per URL
	// with status transitions and page progress.
	Tasks pagesift.TaskService

	Concurrency int
}

// BatchResult pairs one start URL with its crawl outcome.
type BatchResult struct {
	StartURL string
	TaskID   string
	Result   *pagesift.CrawlResult
	Err      error
}

// Run crawls every URL with the same page budget and returns the
// outcomes in input order. A failed crawl marks its own task failed but
// never aborts the rest of the batch.
func (r *Runner) Run(ctx context.Context, urls []string, maxPages int) ([]BatchResult, error) {
	if len(urls) == 0 {
		return []BatchResult{}, nil
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]BatchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = r.runOne(gctx, u, maxPages)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// runOne executes one crawl with task bookkeeping.
func (r *Runner) runOne(ctx context.Context, startURL string, maxPages int) BatchResult {
	out := BatchResult{StartURL: startURL}

	var taskID string
	if r.Tasks != nil {
		task := &pagesift.Task{StartURL: startURL, MaxPages: maxPages}
		if err := r.Tasks.CreateTask(ctx, task); err != nil {
			out.Err = err
			return out
		}
		taskID = task.ID
		out.TaskID = taskID
		r.updateTask(ctx, taskID, pagesift.TaskUpdate{Status: ptr(pagesift.TaskRunning)})
	}

	progress := func(event ProgressEvent) {
		if taskID == "" {
			return
		}
		r.updateTask(ctx, taskID, pagesift.TaskUpdate{Progress: &event.Percent})
	}

	result, err := r.Crawler.Crawl(ctx, startURL, maxPages, progress)
	out.Result = result
	out.Err = err

	if taskID != "" {
		if err != nil {
			msg := pagesift.ErrorMessage(err)
			r.updateTask(ctx, taskID, pagesift.TaskUpdate{
				Status: ptr(pagesift.TaskFailed),
				Error:  &msg,
			})
		} else {
			count := result.Count()
			sum := resultHash(result)
			full := 100
			r.updateTask(ctx, taskID, pagesift.TaskUpdate{
				Status:    ptr(pagesift.TaskCompleted),
				Progress:  &full,
				Strategy:  &result.Strategy,
				Count:     &count,
				ResultSum: &sum,
			})
		}
	}

	return out
}

func (r *Runner) updateTask(ctx context.Context, id string, upd pagesift.TaskUpdate) {
	// Bookkeeping is advisory; a lost update never fails a crawl.
	_, _ = r.Tasks.UpdateTask(ctx, id, upd)
}

// resultHash computes a stable content hash of the extracted records.
func resultHash(result *pagesift.CrawlResult) string {
	data, err := json.Marshal(result.Records)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func ptr[T any](v T) *T {
	return &v
}
