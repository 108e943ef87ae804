package track

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/metrics"
	"github.com/gorilla/websocket"
)

const (
	pingPeriod = 30 * time.Second
	readWait   = 60 * time.Second
)

// StatusUpdate is one live tracking event pushed by the backend.
type StatusUpdate struct {
	TripID    string           `json:"tripId"`
	Status    types.RideStatus `json:"status"`
	Location  models.GeoPoint  `json:"location"`
	Timestamp time.Time        `json:"timestamp"`
}

// LiveTracker streams ride status updates over a websocket as a complement
// to the fixed-interval poller. Optional: when no live URL is configured the
// tracking page falls back to polling alone.
type LiveTracker struct {
	baseURL string
	dialer  *websocket.Dialer
	log     logger.Logger
}

func NewLiveTracker(baseURL string, log logger.Logger) *LiveTracker {
	return &LiveTracker{
		baseURL: baseURL,
		dialer:  websocket.DefaultDialer,
		log:     log,
	}
}

// Run connects and forwards updates for the given trip until the context is
// cancelled or the server closes the stream. The updates channel is not
// closed by Run; the caller owns it.
func (t *LiveTracker) Run(ctx context.Context, tripID string, updates chan<- StatusUpdate) error {
	ctx = wrap.WithAction(ctx, types.ActionTrackLive)
	ctx = wrap.WithTripID(ctx, tripID)

	endpoint := fmt.Sprintf("%s?tripId=%s", t.baseURL, url.QueryEscape(tripID))
	conn, _, err := t.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%w: live tracking connection failed: %v", types.ErrExternalService, err))
	}

	metrics.LiveConnectionsGauge.Inc()
	defer metrics.LiveConnectionsGauge.Dec()

	// Closing the connection on cancellation unblocks the read loop.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()

	go t.keepAlive(ctx, conn)

	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		var update StatusUpdate
		if err := conn.ReadJSON(&update); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return wrap.Error(ctx, fmt.Errorf("%w: live tracking stream broke: %v", types.ErrExternalService, err))
		}

		select {
		case updates <- update:
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *LiveTracker) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
