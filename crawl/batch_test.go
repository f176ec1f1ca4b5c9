package crawl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryTasks is an in-memory TaskService recording every update.
type memoryTasks struct {
	mu      sync.Mutex
	nextID  int
	tasks   map[string]*pagesift.Task
	history map[string][]pagesift.TaskUpdate
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{
		tasks:   make(map[string]*pagesift.Task),
		history: make(map[string][]pagesift.TaskUpdate),
	}
}

func (m *memoryTasks) service() *mock.TaskService {
	return &mock.TaskService{
		CreateTaskFn: func(ctx context.Context, task *pagesift.Task) error {
			if err := task.Validate(); err != nil {
				return err
			}
			m.mu.Lock()
			defer m.mu.Unlock()
			m.nextID++
			task.ID = string(rune('a' + m.nextID - 1))
			task.Status = pagesift.TaskPending
			clone := *task
			m.tasks[task.ID] = &clone
			return nil
		},
		UpdateTaskFn: func(ctx context.Context, id string, upd pagesift.TaskUpdate) (*pagesift.Task, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			task, ok := m.tasks[id]
			if !ok {
				return nil, pagesift.Errorf(pagesift.ENOTFOUND, "task not found")
			}
			m.history[id] = append(m.history[id], upd)
			if upd.Status != nil {
				task.Status = *upd.Status
			}
			if upd.Progress != nil {
				task.Progress = *upd.Progress
			}
			if upd.Strategy != nil {
				task.Strategy = *upd.Strategy
			}
			if upd.Count != nil {
				task.Count = *upd.Count
			}
			if upd.ResultSum != nil {
				task.ResultSum = *upd.ResultSum
			}
			if upd.Error != nil {
				task.Error = *upd.Error
			}
			return task, nil
		},
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	t.Run("results come back in input order", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/a": "<html>a</html>",
			"https://example.com/b": "<html>b</html>",
			"https://example.com/c": "<html>c</html>",
		}}
		r := &crawl.Runner{Crawler: newCrawler(s, nil), Concurrency: 2}

		results, err := r.Run(context.Background(), urls, 1)

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, u := range urls {
			assert.Equal(t, u, results[i].StartURL)
			require.NoError(t, results[i].Err)
			assert.Equal(t, 1, results[i].Result.Count())
		}
	})

	t.Run("a failed crawl does not abort the batch", func(t *testing.T) {
		t.Parallel()

		// Page b is missing.
		s := &pageServer{pages: map[string]string{
			"https://example.com/a": "<html>a</html>",
			"https://example.com/c": "<html>c</html>",
		}}
		r := &crawl.Runner{Crawler: newCrawler(s, nil)}

		results, err := r.Run(context.Background(), urls, 1)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.NoError(t, results[2].Err)
	})

	t.Run("tasks track status, progress, and result summary", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/a": "<html>a</html>",
		}}
		tasks := newMemoryTasks()
		r := &crawl.Runner{Crawler: newCrawler(s, nil), Tasks: tasks.service()}

		results, err := r.Run(context.Background(), []string{"https://example.com/a"}, 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		require.NotEmpty(t, results[0].TaskID)

		task := tasks.tasks[results[0].TaskID]
		require.NotNil(t, task)
		assert.Equal(t, pagesift.TaskCompleted, task.Status)
		assert.Equal(t, 100, task.Progress)
		assert.Equal(t, pagesift.StrategyList, task.Strategy)
		assert.Equal(t, 1, task.Count)
		assert.Len(t, task.ResultSum, 16, "sum is a 64-bit hash in hex")

		// First transition out of pending must be to running.
		history := tasks.history[task.ID]
		require.NotEmpty(t, history)
		require.NotNil(t, history[0].Status)
		assert.Equal(t, pagesift.TaskRunning, *history[0].Status)
	})

	t.Run("a failed crawl marks its task failed", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{}}
		tasks := newMemoryTasks()
		r := &crawl.Runner{Crawler: newCrawler(s, nil), Tasks: tasks.service()}

		results, err := r.Run(context.Background(), []string{"https://example.com/gone"}, 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Error(t, results[0].Err)

		task := tasks.tasks[results[0].TaskID]
		require.NotNil(t, task)
		assert.Equal(t, pagesift.TaskFailed, task.Status)
		assert.NotEmpty(t, task.Error)
	})

	t.Run("identical records produce identical sums", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/a": "<html>same</html>",
			"https://example.com/b": "<html>same</html>",
		}
		s := &pageServer{pages: pages}
		crawler := newCrawler(s, nil)
		// Same record regardless of URL.
		crawler.Lists = &mock.Extractor{ExtractFn: func(string, string) ([]pagesift.Record, error) {
			return []pagesift.Record{{"title": "fixed"}}, nil
		}}

		tasks := newMemoryTasks()
		r := &crawl.Runner{Crawler: crawler, Tasks: tasks.service()}

		results, err := r.Run(context.Background(), []string{"https://example.com/a", "https://example.com/b"}, 1)

		require.NoError(t, err)
		sumA := tasks.tasks[results[0].TaskID].ResultSum
		sumB := tasks.tasks[results[1].TaskID].ResultSum
		assert.Equal(t, sumA, sumB)
	})

	t.Run("empty URL list returns an empty result", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Runner{Crawler: newCrawler(&pageServer{}, nil)}
		results, err := r.Run(context.Background(), nil, 1)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
