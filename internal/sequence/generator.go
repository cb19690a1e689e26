package sequence

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibscroll/internal/logging"
)

const tracerName = "github.com/agbru/fibscroll/internal/sequence"

// request is one queued lookup. Exactly one of onComplete and reply is set.
type request struct {
	ctx        context.Context
	index      int
	onComplete func(Result)
	reply      chan<- Result
}

// Generator serves Fibonacci lookups from a single worker goroutine.
//
// Requests are processed one at a time in submission order and the worker
// is the only goroutine that touches the underlying Cache.
type Generator struct {
	cache      *Cache
	dispatcher Dispatcher
	ownLoop    *Loop
	logger     logging.Logger
	recorder   Recorder
	tracer     trace.Tracer

	mu     sync.Mutex
	queue  []request
	closed bool
	wake   chan struct{}

	stats          atomic.Pointer[Stats]
	overflowLogged bool

	workerDone   chan struct{}
	deliveryDone chan struct{}
}

// Option configures a Generator.
type Option func(*Generator)

// WithDispatcher sets the context on which ValueAtAsync callbacks run.
func WithDispatcher(d Dispatcher) Option {
	return func(g *Generator) { g.dispatcher = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithTracer overrides the OpenTelemetry tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// New starts a Generator. Without WithDispatcher, callbacks run on a
// delivery goroutine owned by the generator, serially and in order.
// Close must be called to stop the worker.
func New(opts ...Option) *Generator {
	g := &Generator{
		cache:      NewCache(),
		logger:     logging.Nop(),
		recorder:   nopRecorder{},
		wake:       make(chan struct{}, 1),
		workerDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(tracerName)
	}
	if g.dispatcher == nil {
		g.ownLoop = NewLoop()
		g.dispatcher = g.ownLoop
		g.deliveryDone = make(chan struct{})
		go func() {
			defer close(g.deliveryDone)
			_ = g.ownLoop.Run(context.Background())
		}()
	}
	g.stats.Store(&Stats{})

	go g.run()
	return g
}

// ValueAtAsync queues a lookup of index n and returns immediately.
// onComplete is invoked exactly once, through the generator's Dispatcher,
// with either the value or an overflow error. Requests complete in the order
// they were submitted. It fails only with ErrClosed.
func (g *Generator) ValueAtAsync(n int, onComplete func(Result)) error {
	if onComplete == nil {
		onComplete = func(Result) {}
	}
	return g.enqueue(request{ctx: context.Background(), index: n, onComplete: onComplete})
}

// ValueAt queues a lookup of index n behind any pending requests and waits
// for it. If ctx ends first the wait is abandoned, but the request still
// runs on the worker.
func (g *Generator) ValueAt(ctx context.Context, n int) (int64, error) {
	reply := make(chan Result, 1)
	if err := g.enqueue(request{ctx: ctx, index: n, reply: reply}); err != nil {
		return 0, err
	}
	select {
	case res := <-reply:
		return res.Value, res.Err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Stats returns the cache counters as of the last processed request.
func (g *Generator) Stats() Stats {
	return *g.stats.Load()
}

// QueueDepth returns the number of requests waiting for the worker.
func (g *Generator) QueueDepth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queue)
}

// Close stops accepting requests, waits for queued requests to complete and
// for the default delivery goroutine to run their callbacks. Concurrent and
// repeated calls all wait for the same shutdown.
func (g *Generator) Close() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.signal()

	<-g.workerDone
	if g.ownLoop != nil {
		g.ownLoop.Close()
		<-g.deliveryDone
	}
	return nil
}

func (g *Generator) enqueue(req request) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	g.queue = append(g.queue, req)
	depth := len(g.queue)
	g.mu.Unlock()

	g.recorder.SetQueueDepth(depth)
	g.signal()
	return nil
}

func (g *Generator) signal() {
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// next blocks until a request is queued. It reports false once the
// generator is closed and the queue is empty.
func (g *Generator) next() (request, bool) {
	for {
		g.mu.Lock()
		if len(g.queue) > 0 {
			req := g.queue[0]
			g.queue[0] = request{}
			g.queue = g.queue[1:]
			depth := len(g.queue)
			g.mu.Unlock()
			g.recorder.SetQueueDepth(depth)
			return req, true
		}
		if g.closed {
			g.mu.Unlock()
			return request{}, false
		}
		g.mu.Unlock()
		<-g.wake
	}
}

func (g *Generator) run() {
	defer close(g.workerDone)
	for {
		req, ok := g.next()
		if !ok {
			return
		}
		res := g.process(req)
		if req.reply != nil {
			req.reply <- res
			continue
		}
		cb := req.onComplete
		g.dispatcher.Dispatch(func() { cb(res) })
	}
}

func (g *Generator) process(req request) Result {
	before := g.cache.Len()
	_, span := g.tracer.Start(req.ctx, "sequence.value_at",
		trace.WithAttributes(
			attribute.Int("index", req.index),
			attribute.Int("cache_len", before),
		),
	)
	defer span.End()

	start := time.Now()
	value, err := g.cache.ValueAt(req.index)
	elapsed := time.Since(start)
	after := g.cache.Len()

	var outcome Outcome
	switch {
	case errors.Is(err, ErrOverflow):
		outcome = OutcomeOverflow
		span.RecordError(err)
		span.SetStatus(codes.Error, "int64 overflow")
		if !g.overflowLogged {
			g.overflowLogged = true
			g.logger.Info("sequence reached int64 limit",
				logging.Int("index", req.index),
				logging.Int("max_index", MaxIndex))
		}
	case err != nil:
		outcome = OutcomeInvalid
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case after > before:
		outcome = OutcomeExtended
		g.logger.Debug("sequence extended",
			logging.Int("from", before),
			logging.Int("to", after),
			logging.Duration("took", elapsed))
	default:
		outcome = OutcomeHit
	}
	span.SetAttributes(attribute.String("outcome", string(outcome)))

	stats := g.cache.Stats()
	g.stats.Store(&stats)
	g.recorder.ObserveRequest(outcome, elapsed)
	g.recorder.SetCacheLength(after)

	return Result{Index: req.index, Value: value, Err: err}
}
