package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of long-lived goroutines that run tile tasks.
//
// Every worker has its own queue. An idle worker first drains its queue,
// then steals from the others, and only then blocks. Tiles cost different
// amounts (a tile crossing a pole or a branch cut is cheap, a tile deep in
// a spiral is not), so stealing keeps all workers busy until the barrier.
//
// WorkerPool is safe for concurrent use; several frames may call ExecuteAll
// at once, and Close may run while they do.
type WorkerPool struct {
	queues []chan func()
	quit   chan struct{}
	wg     sync.WaitGroup

	// mu is held shared while tasks are queued and exclusively while the
	// pool shuts down, so no task is queued after the workers exit.
	mu      sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool starts a pool of n workers. n <= 0 means GOMAXPROCS.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		queues: make([]chan func(), n),
		quit:   make(chan struct{}),
	}
	// A few slots per worker lets the submitter run ahead of the workers.
	depth := max(4*n, 8)
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}

	p.running.Store(true)
	p.wg.Add(n)
	for id := range n {
		go p.loop(id)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	for {
		task, ok := p.next(id)
		if !ok {
			return
		}
		task()
	}
}

// next picks the next task for worker id: its own queue, then a victim's
// queue, then a blocking wait on its own queue. After Close it keeps
// returning queued tasks and reports false once nothing is left.
func (p *WorkerPool) next(id int) (func(), bool) {
	own := p.queues[id]

	select {
	case task := <-own:
		return task, true
	default:
	}

	for off := 1; off < len(p.queues); off++ {
		select {
		case task := <-p.queues[(id+off)%len(p.queues)]:
			return task, true
		default:
		}
	}

	select {
	case task := <-own:
		return task, true
	case <-p.quit:
		select {
		case task := <-own:
			return task, true
		default:
			return nil, false
		}
	}
}

// ExecuteAll runs every task and returns when all of them have finished.
// Tasks are dealt round-robin across the worker queues. On a closed pool
// the tasks run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, task := range tasks {
			task()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(tasks))

	for i, task := range tasks {
		p.queues[i%len(p.queues)] <- func() {
			defer pending.Done()
			task()
		}
	}
	p.mu.RUnlock()

	pending.Wait()
}

// Close stops the workers once every queued task has run. An ExecuteAll
// that is still queueing finishes first; later calls run inline. Calling
// Close more than once is harmless.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.quit)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int {
	return len(p.queues)
}

// IsRunning reports whether Close has not been called yet.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
