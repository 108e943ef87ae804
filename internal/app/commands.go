package app

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/flows"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/track"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/widget"
)

const timeFlagLayout = time.RFC3339

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Auth.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %s", flows.Reason(err))
	}

	profile, _ := a.Session.Profile()
	fmt.Printf("logged in as %s (%s)\n", profile.FullName, profile.EmailID)
	return nil
}

func (a *App) runSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	form := flows.SignupForm{}
	fs.StringVar(&form.FullName, "name", "", "full name")
	fs.StringVar(&form.EmailID, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&form.OrganisationName, "org", "", "organisation name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Auth.Signup(ctx, form); err != nil {
		return fmt.Errorf("signup failed: %s", flows.Reason(err))
	}

	fmt.Printf("account created, logged in as %s\n", form.EmailID)
	return nil
}

func (a *App) runLogout(ctx context.Context, args []string) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *App) runProfile(ctx context.Context, args []string) error {
	profile, err := a.Profile.Get(ctx)
	if err != nil {
		return fmt.Errorf("profile unavailable: %s", flows.Reason(err))
	}

	fmt.Printf("name:  %s\n", profile.FullName)
	fmt.Printf("email: %s\n", profile.EmailID)
	fmt.Printf("phone: %s\n", profile.PhoneNumber)
	if profile.OrganisationName != "" {
		fmt.Printf("org:   %s\n", profile.OrganisationName)
	}
	return nil
}

func (a *App) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	from := fs.String("from", "", "pickup address")
	to := fs.String("to", "", "destination address")
	at := fs.String("time", "", "start time (RFC 3339)")
	seats := fs.Int("seats", 1, "requested seats")
	join := fs.String("join", "", "trip id to join from the results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query, err := a.buildQuery(ctx, *from, *to, *at, *seats)
	if err != nil {
		return err
	}

	if *join != "" {
		if err := a.Search.Join(ctx, query, *join); err != nil {
			return fmt.Errorf("join failed: %s", flows.Reason(err))
		}
		fmt.Printf("joined trip %s\n", *join)
		return nil
	}

	trips, err := a.Search.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %s", flows.Reason(err))
	}
	if len(trips) == 0 {
		fmt.Println("no rides found")
		return nil
	}

	printSearchMap(trips)
	for _, t := range trips {
		joinable := ""
		if !t.Joinable(query.RequestedSeats) {
			joinable = "  (not enough seats)"
		}
		fmt.Printf("%s  %s  %s -> %s  %s  seats=%d%s\n",
			t.TripID, t.DriverName,
			t.PickupPoint.PlaceAddress, t.DestinationPoint.PlaceAddress,
			t.StartTime.Format(timeFlagLayout), t.AvailableSeats, joinable)
	}
	return nil
}

// printSearchMap summarizes the result area the way the map pane would:
// fit bounds around every resolved marker.
func printSearchMap(trips []models.TripSummary) {
	view := widget.NewMapView(nil)

	var markers []models.GeoPoint
	for _, t := range trips {
		markers = append(markers, t.PickupPoint, t.DestinationPoint)
	}
	if err := view.SetMarkers(markers); err != nil {
		return
	}

	bounds, ok := view.Bounds()
	if !ok {
		return
	}
	lat, lon := bounds.Center()
	fmt.Printf("map: %d markers around %.4f,%.4f spanning %.1f km\n",
		len(view.Markers()), lat, lon, bounds.SpanKm())
}

func (a *App) runOffer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offer", flag.ContinueOnError)
	vehicle := fs.String("vehicle", "", "vehicle number")
	from := fs.String("from", "", "pickup address")
	to := fs.String("to", "", "destination address")
	at := fs.String("time", "", "start time (RFC 3339)")
	seats := fs.Int("seats", 0, "offered seats")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parseStartTime(*at)
	if err != nil {
		return err
	}

	offer := models.TripOffer{
		VehicleNumber:    *vehicle,
		PickupPoint:      a.Places.ResolveOrPartial(ctx, *from),
		DestinationPoint: a.Places.ResolveOrPartial(ctx, *to),
		StartTime:        start,
		OfferedSeats:     *seats,
	}

	tripID, err := a.Offer.Create(ctx, offer)
	if err != nil {
		return fmt.Errorf("offer failed: %s", flows.Reason(err))
	}
	fmt.Printf("trip created: %s\n", tripID)
	return nil
}

func (a *App) runMyRides(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("myrides", flag.ContinueOnError)
	history := fs.Bool("history", false, "show past rides instead of upcoming")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		bookings []models.RideBooking
		err      error
	)
	if *history {
		bookings, err = a.MyRides.History(ctx)
	} else {
		bookings, err = a.MyRides.Upcoming(ctx)
	}
	if err != nil {
		return fmt.Errorf("rides unavailable: %s", flows.Reason(err))
	}

	if len(bookings) == 0 {
		fmt.Println("no rides")
		return nil
	}
	for _, b := range bookings {
		printBooking(b)
	}
	return nil
}

func printBooking(b models.RideBooking) {
	fmt.Printf("%s  %s -> %s  %s  seats=%d  %s  %s\n",
		b.TripID,
		b.PickupPoint.PlaceAddress, b.DestinationPoint.PlaceAddress,
		b.StartTime.Format(timeFlagLayout), b.Seats, b.Status, b.VehicleNumber)
}

func (a *App) runCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	trip := fs.String("trip", "", "trip id to cancel")
	reason := fs.String("reason", "", "cancellation reason")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.MyRides.Cancel(ctx, *trip, *reason); err != nil {
		return fmt.Errorf("cancel failed: %s", flows.Reason(err))
	}
	fmt.Printf("ride %s cancelled\n", *trip)
	return nil
}

func (a *App) runVehicles(ctx context.Context, args []string) error {
	vehicles, err := a.Vehicles.List(ctx)
	if err != nil {
		return fmt.Errorf("vehicles unavailable: %s", flows.Reason(err))
	}

	if len(vehicles) == 0 {
		fmt.Println("no vehicles registered")
		return nil
	}
	for _, v := range vehicles {
		fmt.Printf("%s  %s  %s  seats=%d\n", v.VehicleNumber, v.Label(), v.VehicleType, v.SeatingCapacity)
	}
	return nil
}

func (a *App) runRegisterVehicle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register-vehicle", flag.ContinueOnError)
	vehicle := models.Vehicle{}
	fs.StringVar(&vehicle.VehicleNumber, "number", "", "registration number")
	fs.StringVar(&vehicle.VehicleName, "name", "", "vehicle name")
	fs.StringVar(&vehicle.VehicleColor, "color", "", "vehicle color")
	fs.IntVar(&vehicle.SeatingCapacity, "seats", 0, "seating capacity")
	vehicleType := fs.String("type", "", "one of HATCHBACK, SEDAN, SUV, VAN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	vehicle.VehicleType = types.VehicleType(*vehicleType)

	if err := a.Vehicles.Register(ctx, vehicle); err != nil {
		return fmt.Errorf("register failed: %s", flows.Reason(err))
	}
	fmt.Printf("vehicle %s registered\n", vehicle.VehicleNumber)
	return nil
}

// runTrack follows upcoming rides until interrupted. With -trip and a
// configured live endpoint it switches to the websocket stream; otherwise it
// polls and prints each fresh snapshot.
func (a *App) runTrack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	trip := fs.String("trip", "", "trip id for live status updates")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *trip != "" && a.Live != nil {
		return a.trackLive(ctx, *trip)
	}
	return a.trackPolling(ctx)
}

func (a *App) trackLive(ctx context.Context, tripID string) error {
	updates := make(chan track.StatusUpdate)
	done := make(chan error, 1)
	go func() { done <- a.Live.Run(ctx, tripID, updates) }()

	for {
		select {
		case u := <-updates:
			fmt.Printf("%s  trip %s  %s  %.4f,%.4f\n",
				u.Timestamp.Format(timeFlagLayout), u.TripID, u.Status,
				u.Location.Latitude, u.Location.Longitude)
		case err := <-done:
			return err
		}
	}
}

func (a *App) trackPolling(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.Poller.Run(ctx)
		close(done)
	}()

	ticker := time.NewTicker(a.cfg.Tracking.PollInterval)
	defer ticker.Stop()

	// Re-print whenever anything in the snapshot changed, a status
	// transition with an unchanged booking count included.
	lastSnapshot, printed := "", false
	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case <-ticker.C:
			bookings := a.Poller.Latest()
			snapshot := snapshotKey(bookings)
			if printed && snapshot == lastSnapshot {
				continue
			}
			lastSnapshot, printed = snapshot, true
			fmt.Printf("-- %d upcoming ride(s)\n", len(bookings))
			for _, b := range bookings {
				printBooking(b)
			}
		}
	}
}

func snapshotKey(bookings []models.RideBooking) string {
	var sb strings.Builder
	for _, b := range bookings {
		fmt.Fprintf(&sb, "%s|%s|%d|%s;", b.TripID, b.Status, b.Seats, b.StartTime.Format(timeFlagLayout))
	}
	return sb.String()
}

func (a *App) buildQuery(ctx context.Context, from, to, at string, seats int) (models.RideSearchQuery, error) {
	start, err := parseStartTime(at)
	if err != nil {
		return models.RideSearchQuery{}, err
	}
	return models.RideSearchQuery{
		PickupPoint:      a.Places.ResolveOrPartial(ctx, from),
		DestinationPoint: a.Places.ResolveOrPartial(ctx, to),
		StartTime:        start,
		RequestedSeats:   seats,
	}, nil
}

func parseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: start time is required (RFC 3339)", types.ErrValidation)
	}
	start, err := time.Parse(timeFlagLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid start time %q, want RFC 3339", types.ErrValidation, value)
	}
	return start, nil
}
