package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const numTasks = 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != numTasks {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAllWritesBySlot(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	results := make([]int, 50)
	work := make([]func(), len(results))
	for i := range work {
		work[i] = func() { results[i] = i * i }
	}
	pool.ExecuteAll(work)

	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_SlowJobDoesNotBlockOthers(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var fast atomic.Int64
	work := []func(){
		func() { time.Sleep(20 * time.Millisecond) },
	}
	for range 20 {
		work = append(work, func() { fast.Add(1) })
	}
	pool.ExecuteAll(work)

	if fast.Load() != 20 {
		t.Errorf("fast jobs run = %d, want 20", fast.Load())
	}
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Fatal("pool still running after Close")
	}

	var ran atomic.Int64
	pool.ExecuteAll([]func(){
		func() { ran.Add(1) },
		func() { ran.Add(1) },
	})
	if ran.Load() != 2 {
		t.Errorf("work after Close ran %d times, want 2", ran.Load())
	}
}

func TestWorkerPool_ExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()
	pool.ExecuteAll(nil)
}

func TestWorkerPool_CloseDuringExecute(t *testing.T) {
	for range 20 {
		pool := NewWorkerPool(2)

		var ran atomic.Int64
		work := make([]func(), 64)
		for i := range work {
			work[i] = func() { ran.Add(1) }
		}

		finished := make(chan struct{})
		go func() {
			pool.ExecuteAll(work)
			close(finished)
		}()
		pool.Close()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("ExecuteAll did not return after a concurrent Close")
		}
		if ran.Load() != int64(len(work)) {
			t.Fatalf("ran %d jobs, want %d", ran.Load(), len(work))
		}
	}
}
