// Package parallel runs independent composite jobs on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for running composite jobs.
//
// Each worker has its own queue and steals from the others when it runs
// dry, so one slow job (a large image with many annotations) does not stall
// the jobs queued behind it.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	queues []chan func()
	done   chan struct{}
	wg     sync.WaitGroup

	// submit is held for reading while a batch is queued and for writing
	// by Close, so no job lands in a queue after its worker has exited.
	submit  sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. Zero or a
// negative count means GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		queues: make([]chan func(), workers),
		done:   make(chan struct{}),
	}
	depth := max(workers*4, 8)
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		// Own queue first, then other queues, then block.
		select {
		case job := <-own:
			job()
			continue
		default:
		}
		if job := p.steal(id); job != nil {
			job()
			continue
		}
		select {
		case job := <-own:
			job()
		case <-p.done:
			for {
				select {
				case job := <-own:
					job()
				default:
					return
				}
			}
		}
	}
}

// steal takes one queued job from another worker, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	n := len(p.queues)
	for k := 1; k < n; k++ {
		select {
		case job := <-p.queues[(id+k)%n]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and returns when all of them have finished.
// After Close the jobs run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}

	p.submit.RLock()
	if !p.running.Load() {
		p.submit.RUnlock()
		for _, job := range jobs {
			job()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%len(p.queues)] <- func() {
			defer pending.Done()
			job()
		}
	}
	p.submit.RUnlock()

	pending.Wait()
}

// Close finishes the queued jobs and stops the workers. It is safe to call
// more than once.
func (p *WorkerPool) Close() {
	p.submit.Lock()
	stopping := p.running.CompareAndSwap(true, false)
	p.submit.Unlock()
	if !stopping {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return len(p.queues)
}

// IsRunning reports whether the pool still runs jobs on its workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
