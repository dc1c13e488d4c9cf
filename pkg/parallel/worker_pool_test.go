package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestPool(t *testing.T, workers int) *WorkerPool {
	t.Helper()
	pool, err := NewWorkerPool(workers)
	if err != nil {
		t.Fatalf("NewWorkerPool(%d) failed: %v", workers, err)
	}
	return pool
}

// TestWorkerPoolBasicOperations tests basic worker pool functionality
func TestWorkerPoolBasicOperations(t *testing.T) {
	pool := newTestPool(t, 4)

	executed := false
	if !pool.Submit(func() { executed = true }) {
		t.Error("Task submission failed")
	}

	if err := pool.Wait(); err != nil {
		t.Errorf("Wait returned error: %v", err)
	}
	if !executed {
		t.Error("Task was not executed")
	}
}

// TestWorkerPoolConcurrentSubmissions tests concurrent task submissions
func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool := newTestPool(t, 10)

	numTasks := 100
	var counter int64

	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() {
				atomic.AddInt64(&counter, 1)
			})
		}()
	}

	wg.Wait()
	pool.Close()

	if counter != int64(numTasks) {
		t.Errorf("Expected counter %d, got %d", numTasks, counter)
	}
}

// TestWorkerPoolCloseRace tests that closing while submitting does not panic
func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool := newTestPool(t, 4)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() {
						time.Sleep(time.Millisecond)
					})
				}
			}()
		}

		time.Sleep(2 * time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}

// TestWorkerPoolSubmitAfterClose tests that submissions after close return false
func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := newTestPool(t, 2)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Expected Submit to fail after Close")
	}

	// Second close must be a no-op
	pool.Close()
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := newTestPool(t, n)
		if pool.Workers() != DefaultWorkers() {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), DefaultWorkers())
		}
		pool.Close()
	}
}

func TestWorkerPoolTooManyWorkers(t *testing.T) {
	if _, err := NewWorkerPool(MaxWorkers + 1); !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("Expected ErrTooManyWorkers, got %v", err)
	}
}

// TestWorkerPoolWithPanic tests that a panicking task is reported by Wait
// and does not stop other tasks
func TestWorkerPoolWithPanic(t *testing.T) {
	pool := newTestPool(t, 2)

	var ran int64
	pool.Submit(func() { panic("boom") })
	for i := 0; i < 5; i++ {
		pool.Submit(func() { atomic.AddInt64(&ran, 1) })
	}

	err := pool.Wait()
	if !errors.Is(err, ErrTaskPanicked) {
		t.Errorf("Expected ErrTaskPanicked, got %v", err)
	}
	if ran != 5 {
		t.Errorf("Expected 5 tasks to run, got %d", ran)
	}
}

func TestForEach(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"sequential", 1, 20},
		{"parallel", 4, 20},
		{"more workers than tasks", 16, 3},
		{"default workers", 0, 10},
		{"single task", 4, 1},
		{"no tasks", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]int, tt.n)
			err := ForEach(tt.workers, tt.n, func(i int) {
				out[i] = i * i
			})
			if err != nil {
				t.Fatalf("ForEach failed: %v", err)
			}
			for i, v := range out {
				if v != i*i {
					t.Errorf("out[%d] = %d, want %d", i, v, i*i)
				}
			}
		})
	}
}

func TestForEach_Panic(t *testing.T) {
	for _, workers := range []int{1, 3} {
		err := ForEach(workers, 4, func(i int) {
			if i == 2 {
				panic("bad index")
			}
		})
		if !errors.Is(err, ErrTaskPanicked) {
			t.Errorf("workers=%d: expected ErrTaskPanicked, got %v", workers, err)
		}
	}
}

func BenchmarkForEach(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ForEach(4, 64, func(int) {})
	}
}
