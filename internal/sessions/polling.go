package sessions

import (
	"context"
	"time"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// DefaultPollInterval is the market snapshot refresh cadence.
const DefaultPollInterval = 30 * time.Second

// PollingController refreshes the market snapshot on a fixed interval while
// active. Activation fetches immediately; deactivation cancels the pending
// timer so no tick fires afterwards. A failed poll keeps the previous
// snapshot (stale-but-present) rather than clearing it.
type PollingController struct {
	loop   *dispatch.Loop
	client interfaces.BackendClient
	logger *common.Logger
	sched  dispatch.Scheduler

	assets   []string
	interval time.Duration

	snapshot    models.MarketSnapshot
	active      bool
	epoch       int // bumped on activate/deactivate; stale results are dropped
	cancelTimer func()
}

// NewPollingController creates an inactive controller.
func NewPollingController(loop *dispatch.Loop, client interfaces.BackendClient, logger *common.Logger, sched dispatch.Scheduler, assets []string, interval time.Duration) *PollingController {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if len(assets) == 0 {
		assets = models.DefaultMarketAssets
	}
	return &PollingController{
		loop:     loop,
		client:   client,
		logger:   logger,
		sched:    sched,
		assets:   assets,
		interval: interval,
	}
}

// Active reports whether the controller is polling.
func (p *PollingController) Active() bool {
	return p.active
}

// Snapshot returns the last successfully fetched snapshot, or nil if none
// has loaded yet. The snapshot survives deactivation.
func (p *PollingController) Snapshot() models.MarketSnapshot {
	return p.snapshot
}

// Activate starts polling with an immediate fetch. Activating an active
// controller is a no-op.
func (p *PollingController) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.epoch++
	p.tick()
}

// Deactivate stops polling and cancels the pending timer. The last snapshot
// is retained.
func (p *PollingController) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.epoch++
	if p.cancelTimer != nil {
		p.cancelTimer()
		p.cancelTimer = nil
	}
	p.logger.Debug().Msg("Market polling stopped")
}

// tick issues one snapshot fetch and schedules the next tick. The next tick
// is scheduled up front so the cadence is fixed, independent of how long
// each fetch takes.
func (p *PollingController) tick() {
	if !p.active {
		return
	}
	p.cancelTimer = p.sched.Schedule(p.interval, p.tick)

	epoch := p.epoch
	dispatch.Go(p.loop, func() (models.MarketSnapshot, error) {
		return p.client.GetMarketData(context.Background(), p.assets)
	}, func(snapshot models.MarketSnapshot, err error) {
		p.onSnapshot(epoch, snapshot, err)
	})
}

// onSnapshot applies a poll result. Results from a previous activation epoch
// are dropped; failures are logged and skipped with the prior snapshot kept.
func (p *PollingController) onSnapshot(epoch int, snapshot models.MarketSnapshot, err error) {
	if epoch != p.epoch {
		return
	}
	if err != nil {
		p.logger.Warn().Err(err).Msg("Market snapshot fetch failed")
		return
	}
	p.snapshot = snapshot
}
