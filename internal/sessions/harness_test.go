package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// fakeBackend implements interfaces.BackendClient. Each method blocks until
// the test resolves the recorded call, which lets tests interleave responses
// with user commands deterministically.
type fakeBackend struct {
	calls chan *backendCall
}

type backendCall struct {
	op    string // "chat", "market", "analytics", "strategies", "forecast", "profile.get", "profile.save"
	arg   string
	saved models.Profile
	reply chan callResult
}

type callResult struct {
	val interface{}
	err error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(chan *backendCall, 16)}
}

// next returns the oldest unresolved call, failing the test after a timeout.
func (f *fakeBackend) next(t *testing.T) *backendCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a backend call")
		return nil
	}
}

// expectNone asserts no call arrives within a short window.
func (f *fakeBackend) expectNone(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected backend call %q", c.op)
	case <-time.After(50 * time.Millisecond):
	}
}

func (c *backendCall) resolve(val interface{}, err error) {
	c.reply <- callResult{val: val, err: err}
}

func (f *fakeBackend) record(op, arg string) callResult {
	c := &backendCall{op: op, arg: arg, reply: make(chan callResult, 1)}
	f.calls <- c
	return <-c.reply
}

func (f *fakeBackend) Chat(_ context.Context, message string) (*models.ChatReply, error) {
	r := f.record("chat", message)
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(*models.ChatReply), nil
}

func (f *fakeBackend) GetMarketData(_ context.Context, assets []string) (models.MarketSnapshot, error) {
	r := f.record("market", "")
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(models.MarketSnapshot), nil
}

func (f *fakeBackend) GetPortfolioAnalytics(_ context.Context) (*models.AnalyticsSummary, error) {
	r := f.record("analytics", "")
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(*models.AnalyticsSummary), nil
}

func (f *fakeBackend) GetStrategies(_ context.Context) (*models.StrategyRecommendation, error) {
	r := f.record("strategies", "")
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(*models.StrategyRecommendation), nil
}

func (f *fakeBackend) GetForecast(_ context.Context, asset string) (*models.ForecastSeries, error) {
	r := f.record("forecast", asset)
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(*models.ForecastSeries), nil
}

func (f *fakeBackend) GetProfile(_ context.Context) (*models.Profile, error) {
	r := f.record("profile.get", "")
	if r.err != nil {
		return nil, r.err
	}
	return r.val.(*models.Profile), nil
}

func (f *fakeBackend) SaveProfile(_ context.Context, profile models.Profile) error {
	c := &backendCall{op: "profile.save", saved: profile, reply: make(chan callResult, 1)}
	f.calls <- c
	r := <-c.reply
	return r.err
}

func (f *fakeBackend) Health(_ context.Context) error {
	r := f.record("health", "")
	return r.err
}

var _ interfaces.BackendClient = (*fakeBackend)(nil)

// fakeScheduler records scheduled timers; tests fire them explicitly instead
// of waiting on the wall clock.
type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &fakeTimer{d: d, fn: fn}
	s.pending = append(s.pending, timer)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		timer.cancelled = true
	}
}

// pendingCount returns the number of live (uncancelled, unfired) timers.
func (s *fakeScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, timer := range s.pending {
		if !timer.cancelled {
			n++
		}
	}
	return n
}

// fireNext pops the oldest timer and runs its callback unless cancelled.
// Must be invoked on the loop (tests wrap it in loop.Do) since callbacks
// mutate session state.
func (s *fakeScheduler) fireNext() {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	timer := s.pending[0]
	s.pending = s.pending[1:]
	s.mu.Unlock()

	if !timer.cancelled {
		timer.fn()
	}
}

var _ dispatch.Scheduler = (*fakeScheduler)(nil)

// harness bundles a running loop, fake backend and fake scheduler.
type harness struct {
	loop    *dispatch.Loop
	backend *fakeBackend
	sched   *fakeScheduler
	logger  *common.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	loop := dispatch.NewLoop()
	loop.Start()
	t.Cleanup(loop.Stop)
	return &harness{
		loop:    loop,
		backend: newFakeBackend(),
		sched:   newFakeScheduler(),
		logger:  common.NewSilentLogger(),
	}
}

// waitFor polls condition (evaluated on the loop) until it holds or the
// test deadline expires.
func (h *harness) waitFor(t *testing.T, what string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var ok bool
		h.loop.Do(func() { ok = condition() })
		if ok {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// settle runs a barrier plus a short pause so that any already-resolved
// continuations have been posted and executed.
func (h *harness) settle() {
	time.Sleep(20 * time.Millisecond)
	h.loop.Do(func() {})
}
