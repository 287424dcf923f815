package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fetchRequest is one unit of acquisition work. The reply channel is buffered
// with capacity 1 and receives exactly one value: the acquired report, or nil
// when neither the remote source nor the catalog knows the location.
type fetchRequest struct {
	id       string
	location string
	reply    chan<- *Report
	stop     bool
}

// Worker serializes all outbound acquisition. A single goroutine consumes an
// unbounded FIFO queue, so cache writes need no coordination beyond the
// store's own snapshot locking, and requests are processed strictly in
// arrival order. Two queued requests for the same location both do
// independent work; there is no de-duplication.
type Worker struct {
	source   Source
	fallback Fallback
	cache    Store
	timeout  time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	pending []fetchRequest

	done      chan struct{}
	processed int
}

// NewWorker wires the worker against its collaborators. source may be nil
// when no credential is configured; every request then goes straight to the
// fallback. timeout <= 0 falls back to FetchTimeout.
func NewWorker(source Source, fallback Fallback, store Store, timeout time.Duration) *Worker {
	if timeout <= 0 {
		timeout = FetchTimeout
	}
	w := &Worker{
		source:   source,
		fallback: fallback,
		cache:    store,
		timeout:  timeout,
		done:     make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Start launches the worker loop. It runs until Stop enqueues the sentinel.
func (w *Worker) Start() {
	go w.loop()
}

// Stop enqueues the stop sentinel and waits for the loop to drain everything
// ahead of it and exit.
func (w *Worker) Stop() {
	w.enqueue(fetchRequest{stop: true})
	<-w.done
}

// Processed returns how many requests the worker has handled. Used by tests
// verifying that fresh cache hits never reach the worker.
func (w *Worker) Processed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed
}

// enqueue appends a request and wakes the loop. It never blocks: the queue is
// a plain slice, not a bounded channel, so submitters return immediately.
func (w *Worker) enqueue(req fetchRequest) {
	w.mu.Lock()
	w.pending = append(w.pending, req)
	w.mu.Unlock()
	w.cond.Signal()
}

func (w *Worker) loop() {
	for {
		w.mu.Lock()
		for len(w.pending) == 0 {
			w.cond.Wait()
		}
		req := w.pending[0]
		w.pending = w.pending[1:]
		if !req.stop {
			w.processed++
		}
		w.mu.Unlock()

		if req.stop {
			close(w.done)
			return
		}

		w.handle(req)
	}
}

// handle resolves one request: remote attempt, catalog fallback, cache write,
// reply. Nothing here is allowed to kill the loop; every failure either
// routes to the fallback or is logged and absorbed.
func (w *Worker) handle(req fetchRequest) {
	report, ok := w.fetchRemote(req.location, req.id)
	if !ok {
		if baseline, found := w.fallback.Baseline(req.location); found {
			report = baseline
			report.ObservedAt = time.Now().Unix()
			ok = true
		}
	}

	if !ok {
		// Neither source knows the location. The cache stays untouched.
		req.reply <- nil
		return
	}

	// Best-effort relative to the caller: a failed persist is logged, the
	// in-memory result is still delivered.
	if err := w.cache.Put(req.location, report); err != nil {
		log.Printf("worker: cache write failed request=%s location=%q: %v", req.id, req.location, err)
	}

	req.reply <- &report
}

// fetchRemote makes the single bounded attempt against the remote source.
// A nil source (no credential) and every failure mode collapse to ok=false.
func (w *Worker) fetchRemote(location, requestID string) (Report, bool) {
	if w.source == nil {
		return Report{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	report, err := w.source.Current(ctx, location)
	if err != nil {
		log.Printf("worker: %s fetch failed request=%s location=%q: %v", w.source.Name(), requestID, location, err)
		return Report{}, false
	}
	return report, true
}

// newRequestID tags a request for log correlation.
func newRequestID() string {
	return uuid.NewString()
}
