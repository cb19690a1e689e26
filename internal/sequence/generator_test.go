package sequence

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibscroll/internal/logging"
)

var firstTwenty = []int64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597, 2584, 4181, 6765}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestGenerator_FIFOOrder(t *testing.T) {
	t.Parallel()
	loop := NewLoop()
	g := New(WithDispatcher(loop))
	defer g.Close()

	var got []Result
	for i := 0; i < 20; i++ {
		if err := g.ValueAtAsync(i, func(r Result) { got = append(got, r) }); err != nil {
			t.Fatalf("ValueAtAsync(%d): %v", i, err)
		}
	}

	if err := loop.RunUntil(testContext(t), func() bool { return len(got) == 20 }); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}

	values := make([]int64, len(got))
	for i, r := range got {
		if r.Index != i {
			t.Errorf("completion %d carries index %d", i, r.Index)
		}
		if r.Err != nil {
			t.Errorf("completion %d error: %v", i, r.Err)
		}
		values[i] = r.Value
	}
	if diff := cmp.Diff(firstTwenty, values); diff != "" {
		t.Errorf("delivered values differ (-want +got):\n%s", diff)
	}
}

func TestGenerator_CallbacksRunOnCallerLoop(t *testing.T) {
	t.Parallel()
	loop := NewLoop()
	g := New(WithDispatcher(loop))
	defer g.Close()

	var ran atomic.Int32
	for i := 0; i < 20; i++ {
		_ = g.ValueAtAsync(i, func(Result) { ran.Add(1) })
	}

	// The worker only queues deliveries; nothing runs until the owner drains.
	waitFor(t, func() bool { return loop.Pending() == 20 })
	if ran.Load() != 0 {
		t.Fatalf("%d callbacks ran before the loop was drained", ran.Load())
	}
	if n := loop.Drain(); n != 20 {
		t.Errorf("Drain() ran %d callbacks, want 20", n)
	}
	if ran.Load() != 20 {
		t.Errorf("ran = %d, want 20", ran.Load())
	}
}

func TestGenerator_DefaultDispatcher(t *testing.T) {
	t.Parallel()
	g := New()

	results := make(chan Result, 20)
	for i := 0; i < 20; i++ {
		_ = g.ValueAtAsync(i, func(r Result) { results <- r })
	}
	// Close returns only after every accepted callback has run.
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	close(results)

	var values []int64
	for r := range results {
		values = append(values, r.Value)
	}
	if diff := cmp.Diff(firstTwenty, values); diff != "" {
		t.Errorf("delivered values differ (-want +got):\n%s", diff)
	}
}

func TestGenerator_OverflowDelivered(t *testing.T) {
	t.Parallel()
	loop := NewLoop()
	g := New(WithDispatcher(loop))
	defer g.Close()

	var got []Result
	for n := MaxIndex - 1; n <= MaxIndex+4; n++ {
		_ = g.ValueAtAsync(n, func(r Result) { got = append(got, r) })
	}
	if err := loop.RunUntil(testContext(t), func() bool { return len(got) == 6 }); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}

	for _, r := range got {
		if r.Index <= MaxIndex {
			if !r.OK() {
				t.Errorf("index %d: unexpected error %v", r.Index, r.Err)
			}
			continue
		}
		if !r.Overflowed() {
			t.Errorf("index %d: expected overflow, got value %d err %v", r.Index, r.Value, r.Err)
		}
	}
}

func TestGenerator_ExactlyOnceUnderConcurrency(t *testing.T) {
	t.Parallel()
	g := New()

	const submitters, perSubmitter = 8, 100
	counts := make([]atomic.Int32, submitters*perSubmitter)

	var wg sync.WaitGroup
	for s := 0; s < submitters; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				id := s*perSubmitter + i
				n := id % (MaxIndex + 10)
				if err := g.ValueAtAsync(n, func(Result) { counts[id].Add(1) }); err != nil {
					t.Errorf("ValueAtAsync: %v", err)
				}
			}
		}(s)
	}
	wg.Wait()
	_ = g.Close()

	for id := range counts {
		if c := counts[id].Load(); c != 1 {
			t.Errorf("request %d completed %d times", id, c)
		}
	}
}

func TestGenerator_ValueAtConcurrent(t *testing.T) {
	t.Parallel()
	g := New()
	defer g.Close()

	want := NewCache()
	_, _ = want.ValueAt(MaxIndex)
	expected := want.Values()

	eg, ctx := errgroup.WithContext(testContext(t))
	for i := 0; i < 64; i++ {
		n := (i * 37) % (MaxIndex + 1)
		eg.Go(func() error {
			v, err := g.ValueAt(ctx, n)
			if err != nil {
				return err
			}
			if v != expected[n] {
				t.Errorf("ValueAt(%d) = %d, want %d", n, v, expected[n])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("concurrent ValueAt: %v", err)
	}
}

func TestGenerator_ValueAtHonoursContext(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	blocked := make(chan struct{})
	var once sync.Once
	g := New(WithDispatcher(DispatcherFunc(func(fn func()) {
		once.Do(func() { close(blocked) })
		<-release
		fn()
	})))

	// Park the worker inside the first delivery.
	_ = g.ValueAtAsync(0, nil)
	<-blocked

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.ValueAt(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Errorf("ValueAt with canceled context error = %v, want context.Canceled", err)
	}

	close(release)
	_ = g.Close()
	if got := g.Stats().Len; got != 6 {
		t.Errorf("abandoned request should still run; Len = %d, want 6", got)
	}
}

func TestGenerator_Closed(t *testing.T) {
	t.Parallel()
	g := New()
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := g.ValueAtAsync(1, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("ValueAtAsync after Close = %v, want ErrClosed", err)
	}
	if _, err := g.ValueAt(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("ValueAt after Close = %v, want ErrClosed", err)
	}
}

func TestGenerator_ConcurrentCloseWaits(t *testing.T) {
	t.Parallel()
	g := New()

	const n = 30
	var ran atomic.Int32
	for i := 0; i < n; i++ {
		_ = g.ValueAtAsync(i, func(Result) {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}

	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Close()
			if got := ran.Load(); got != n {
				t.Errorf("Close returned after %d of %d callbacks", got, n)
			}
		}()
	}
	wg.Wait()
}

func TestGenerator_NegativeIndex(t *testing.T) {
	t.Parallel()
	g := New()
	defer g.Close()
	if _, err := g.ValueAt(testContext(t), -3); !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("ValueAt(-3) = %v, want ErrNegativeIndex", err)
	}
}

// fakeRecorder captures recorder calls.
type fakeRecorder struct {
	mu        sync.Mutex
	outcomes  []Outcome
	cacheLen  int
	maxQueued int
}

func (f *fakeRecorder) ObserveRequest(o Outcome, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
}

func (f *fakeRecorder) SetCacheLength(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheLen = n
}

func (f *fakeRecorder) SetQueueDepth(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > f.maxQueued {
		f.maxQueued = n
	}
}

func TestGenerator_Recorder(t *testing.T) {
	t.Parallel()
	rec := &fakeRecorder{}
	g := New(WithRecorder(rec))
	ctx := testContext(t)

	_, _ = g.ValueAt(ctx, 10)
	_, _ = g.ValueAt(ctx, 5)
	_, _ = g.ValueAt(ctx, 100)
	_, _ = g.ValueAt(ctx, -1)
	_ = g.Close()

	want := []Outcome{OutcomeExtended, OutcomeHit, OutcomeOverflow, OutcomeInvalid}
	if diff := cmp.Diff(want, rec.outcomes); diff != "" {
		t.Errorf("outcomes differ (-want +got):\n%s", diff)
	}
	if rec.cacheLen != MaxIndex+1 {
		t.Errorf("cache length = %d, want %d", rec.cacheLen, MaxIndex+1)
	}
	if rec.maxQueued < 1 {
		t.Errorf("queue depth never reported")
	}
}

func TestGenerator_Stats(t *testing.T) {
	t.Parallel()
	g := New()
	ctx := testContext(t)
	_, _ = g.ValueAt(ctx, 20)
	_, _ = g.ValueAt(ctx, 3)
	_ = g.Close()

	want := Stats{Len: 21, Hits: 1, Extensions: 1}
	if got := g.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestGenerator_Tracing(t *testing.T) {
	t.Parallel()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	g := New(WithTracer(tp.Tracer("test")))
	ctx := testContext(t)
	_, _ = g.ValueAt(ctx, 5)
	_, _ = g.ValueAt(ctx, 100)
	_ = g.Close()

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if s.Name() != "sequence.value_at" {
			t.Errorf("span name = %q", s.Name())
		}
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("successful lookup should not have error status")
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("overflow span status = %v, want Error", spans[1].Status().Code)
	}
}

func TestGenerator_LogsOverflowOnce(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	g := New(WithLogger(logging.NewStdLoggerAdapter(log.New(&buf, "", 0))))
	ctx := testContext(t)
	_, _ = g.ValueAt(ctx, 10)
	_, _ = g.ValueAt(ctx, 120)
	_, _ = g.ValueAt(ctx, 130)
	_ = g.Close()

	output := buf.String()
	if !strings.Contains(output, "sequence extended") {
		t.Errorf("expected extension log, got: %s", output)
	}
	if c := strings.Count(output, "sequence reached int64 limit"); c != 1 {
		t.Errorf("overflow logged %d times, want 1; output: %s", c, output)
	}
}
