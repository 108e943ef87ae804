package track

import (
	"context"
	"sync"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/metrics"
)

// RideSource supplies the bookings to track. Implemented by the MyRides
// flow.
type RideSource interface {
	Upcoming(ctx context.Context) ([]models.RideBooking, error)
}

// Poller refreshes the tracked bookings on a fixed interval. Polls are
// numbered; a result whose poll has been superseded by a newer one is
// discarded, so the latest snapshot can never move backwards in time.
// Cancellation is tied to the context: navigating away stops the loop.
type Poller struct {
	source   RideSource
	interval time.Duration
	log      logger.Logger

	mu      sync.Mutex
	seq     uint64 // newest poll started
	applied uint64 // poll whose result is currently held
	latest  []models.RideBooking
}

func NewPoller(source RideSource, interval time.Duration, log logger.Logger) *Poller {
	return &Poller{
		source:   source,
		interval: interval,
		log:      log,
	}
}

// Run polls immediately and then on every tick until the context is
// cancelled. Each poll runs independently so a hung request cannot stall the
// schedule.
func (p *Poller) Run(ctx context.Context) {
	ctx = wrap.WithAction(ctx, types.ActionTrackPoll)

	var wg sync.WaitGroup
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	launch := func() {
		seq := p.nextSeq()
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.poll(ctx, seq)
		}()
	}

	launch()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
			launch()
		}
	}
}

// Latest returns the most recent snapshot.
func (p *Poller) Latest() []models.RideBooking {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.RideBooking, len(p.latest))
	copy(out, p.latest)
	return out
}

func (p *Poller) nextSeq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

func (p *Poller) poll(ctx context.Context, seq uint64) {
	bookings, err := p.source.Upcoming(ctx)
	metrics.RecordTrackPoll(err)
	if err != nil {
		// Poll failures are logged, not surfaced; the next tick retries.
		p.log.Warn(ctx, "tracking poll failed", "seq", seq)
		return
	}
	p.apply(seq, bookings)
}

// apply installs the result unless a newer poll has started or a newer
// result is already held.
func (p *Poller) apply(seq uint64, bookings []models.RideBooking) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq < p.seq || seq <= p.applied {
		metrics.TrackPollsDiscarded.Inc()
		return false
	}
	p.applied = seq
	p.latest = bookings
	return true
}
