package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/config"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/locationiq"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/flows"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/track"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/widget"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
)

var ErrUnknownCommand = errors.New("unknown command")

// App is the composition root of the client. Everything the commands need is
// built once here; the session is restored before NewApplication returns, so
// commands never observe a half-initialized auth state.
type App struct {
	cfg config.Config
	log logger.Logger

	Session *session.Session
	Places  *widget.PlacesInput

	Auth     *flows.AuthFlow
	Search   *flows.SearchFlow
	Offer    *flows.OfferFlow
	MyRides  *flows.MyRidesFlow
	Vehicles *flows.VehiclesFlow
	Profile  *flows.ProfileFlow

	Poller *track.Poller
	Live   *track.LiveTracker
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	store := session.NewStore(cfg.Session.StorePath)
	sess := session.New(ctx, store, log)

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	geocoder := locationiq.New(cfg.Geocoder.APIKey, cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout)

	places := widget.NewPlacesInput(cfg.Geocoder.APIKey, geocoder)
	places.Load(ctx)

	myRides := flows.NewMyRidesFlow(api, sess, log)

	app := &App{
		cfg: cfg,
		log: log,

		Session: sess,
		Places:  places,

		Auth:     flows.NewAuthFlow(api, sess, log),
		Search:   flows.NewSearchFlow(api, sess, log),
		Offer:    flows.NewOfferFlow(api, sess, log),
		MyRides:  myRides,
		Vehicles: flows.NewVehiclesFlow(api, sess, log),
		Profile:  flows.NewProfileFlow(api, sess, log),

		Poller: track.NewPoller(myRides, cfg.Tracking.PollInterval, log),
	}

	if cfg.Tracking.LiveURL != "" {
		app.Live = track.NewLiveTracker(cfg.Tracking.LiveURL, log)
	}

	if cfg.Metrics.Enabled {
		app.serveMetrics(ctx)
	}

	return app, nil
}

// Run executes a single client command. The command set mirrors the pages of
// the app: auth, search, offer, my rides, vehicles, profile, tracking.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	cmd, ok := a.commands()[command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	return cmd(ctx, args)
}

func (a *App) commands() map[string]func(context.Context, []string) error {
	return map[string]func(context.Context, []string) error{
		"login":            a.runLogin,
		"signup":           a.runSignup,
		"logout":           a.runLogout,
		"profile":          a.runProfile,
		"search":           a.runSearch,
		"offer":            a.runOffer,
		"myrides":          a.runMyRides,
		"cancel":           a.runCancel,
		"vehicles":         a.runVehicles,
		"register-vehicle": a.runRegisterVehicle,
		"track":            a.runTrack,
	}
}

// serveMetrics exposes the Prometheus registry in the background. Failures
// are logged, never fatal: metrics are an operator convenience.
func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
	go func() {
		a.log.Info(ctx, "metrics listening", "addr", a.cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Warn(ctx, "metrics server stopped", "error", err.Error())
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}
