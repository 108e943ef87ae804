package flows

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
)

// fakeBackend scripts responses per endpoint and counts calls.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	loginResp  *backend.LoginResponseDTO
	signupResp *backend.SignUpResponseDTO
	userInfo   *backend.UserInfoDTO
	trips      []backend.TripBasicInfoDTO
	joinResp   *backend.JoinRideResponseDTO
	upcoming   []backend.RideBasicInfoDTO
	history    []backend.RideBasicInfoDTO
	cancelResp *backend.CancelRideResponseDTO
	createResp *backend.CreateTripResponseDTO
	vehicles   []backend.VehicleResponseDTO

	lastRide backend.RideDTO
	err      error

	// When set, FindRides blocks until the channel is closed.
	searchGate chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

func (f *fakeBackend) count(endpoint string) {
	f.mu.Lock()
	f.calls[endpoint]++
	f.mu.Unlock()
}

func (f *fakeBackend) callCount(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeBackend) Login(ctx context.Context, req backend.LoginRequestDTO) (*backend.LoginResponseDTO, error) {
	f.count("login")
	return f.loginResp, f.err
}

func (f *fakeBackend) Signup(ctx context.Context, req backend.UserInfoDTO) (*backend.SignUpResponseDTO, error) {
	f.count("signup")
	return f.signupResp, f.err
}

func (f *fakeBackend) GetUserInfo(ctx context.Context, userID string) (*backend.UserInfoDTO, error) {
	f.count("userinfo")
	return f.userInfo, f.err
}

func (f *fakeBackend) FindRides(ctx context.Context, userID string, req backend.RideDTO) ([]backend.TripBasicInfoDTO, error) {
	f.count("find")
	f.mu.Lock()
	f.lastRide = req
	gate := f.searchGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.trips, f.err
}

func (f *fakeBackend) JoinTrip(ctx context.Context, userID string, req backend.RideDTO) (*backend.JoinRideResponseDTO, error) {
	f.count("join")
	f.mu.Lock()
	f.lastRide = req
	f.mu.Unlock()
	return f.joinResp, f.err
}

func (f *fakeBackend) UpcomingRides(ctx context.Context, userID string) ([]backend.RideBasicInfoDTO, error) {
	f.count("upcoming")
	return f.upcoming, f.err
}

func (f *fakeBackend) HistoryRides(ctx context.Context, userID string) ([]backend.RideBasicInfoDTO, error) {
	f.count("history")
	return f.history, f.err
}

func (f *fakeBackend) CancelRide(ctx context.Context, userID string, req backend.CancelRideRequestDTO) (*backend.CancelRideResponseDTO, error) {
	f.count("cancel")
	// Mimic the server: a successful cancel moves the booking to history.
	if f.cancelResp != nil && f.cancelResp.RideCancelled {
		f.mu.Lock()
		kept := f.upcoming[:0]
		for _, r := range f.upcoming {
			if r.TripID == req.TripID {
				r.TripStatus = string(types.RideCancelled)
				f.history = append(f.history, r)
				continue
			}
			kept = append(kept, r)
		}
		f.upcoming = kept
		f.mu.Unlock()
	}
	return f.cancelResp, f.err
}

func (f *fakeBackend) CreateTrip(ctx context.Context, userID string, req backend.OfferRideDTO) (*backend.CreateTripResponseDTO, error) {
	f.count("create")
	return f.createResp, f.err
}

func (f *fakeBackend) GetVehicles(ctx context.Context, userID string) ([]backend.VehicleResponseDTO, error) {
	f.count("vehicles")
	return f.vehicles, f.err
}

func (f *fakeBackend) RegisterVehicle(ctx context.Context, userID string, req backend.VehicleRegisterRequestDTO) error {
	f.count("register")
	return f.err
}

func testLogger() logger.Logger {
	return logger.InitLogger("test", logger.LevelError)
}

func loggedInSession(t *testing.T) *session.Session {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	s := session.New(context.Background(), store, testLogger())
	err := s.Login(context.Background(), "u1", models.UserIdentity{
		UserID: "u1", FullName: "A B", EmailID: "a@b.com",
	}, "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return s
}

func emptySession(t *testing.T) *session.Session {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return session.New(context.Background(), store, testLogger())
}

func validQuery() models.RideSearchQuery {
	return models.RideSearchQuery{
		PickupPoint:      models.ResolvedPoint(-6.7924, 39.2083, "Dar es Salaam"),
		DestinationPoint: models.ResolvedPoint(-6.1630, 35.7516, "Dodoma"),
		StartTime:        time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		RequestedSeats:   2,
	}
}

/* ======================= auth ======================= */

func TestLogin_EstablishesSession(t *testing.T) {
	fb := newFakeBackend()
	fb.loginResp = &backend.LoginResponseDTO{LoginSuccess: true, UserID: "u1"}
	fb.userInfo = &backend.UserInfoDTO{FullName: "A B", EmailID: "a@b.com"}

	s := emptySession(t)
	flow := NewAuthFlow(fb, s, testLogger())

	if err := flow.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("session must be authenticated after login")
	}
	profile, ok := s.Profile()
	if !ok || profile.FullName != "A B" {
		t.Fatalf("profile not cached: %+v", profile)
	}
	if flow.State() != types.FlowSuccess {
		t.Fatalf("expected Success state, got %s", flow.State())
	}
}

func TestLogin_ValidationBeforeNetwork(t *testing.T) {
	fb := newFakeBackend()
	flow := NewAuthFlow(fb, emptySession(t), testLogger())

	err := flow.Login(context.Background(), "", "")
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fb.callCount("login") != 0 {
		t.Fatal("validation failure must not issue a network call")
	}
}

func TestLogin_ServerRejection(t *testing.T) {
	fb := newFakeBackend()
	fb.loginResp = &backend.LoginResponseDTO{LoginSuccess: false, ErrMsg: "invalid credentials"}

	s := emptySession(t)
	flow := NewAuthFlow(fb, s, testLogger())

	err := flow.Login(context.Background(), "a@b.com", "bad")
	if !errors.Is(err, types.ErrServerReported) {
		t.Fatalf("expected server-reported failure, got %v", err)
	}
	if Reason(err) != "invalid credentials" {
		t.Fatalf("reason must be surfaced, got %q", Reason(err))
	}
	if s.IsAuthenticated() {
		t.Fatal("failed login must not establish a session")
	}
}

func TestSignup_EstablishesSession(t *testing.T) {
	fb := newFakeBackend()
	fb.signupResp = &backend.SignUpResponseDTO{SignUpSuccess: true, UserID: "u2"}

	s := emptySession(t)
	flow := NewAuthFlow(fb, s, testLogger())

	form := SignupForm{FullName: "C D", EmailID: "c@d.com", Password: "pw", PhoneNumber: "+255700000001"}
	if err := flow.Signup(context.Background(), form); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if s.UserID() != "u2" {
		t.Fatalf("unexpected user id %q", s.UserID())
	}
}

/* ======================= search & join ======================= */

func TestSearch_OneCallPerSubmit(t *testing.T) {
	fb := newFakeBackend()
	fb.searchGate = make(chan struct{})

	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := flow.Search(context.Background(), validQuery())
		done <- err
	}()

	// Wait until the first submission is inside the backend call.
	for flow.State() != types.FlowSubmitting {
		time.Sleep(time.Millisecond)
	}
	for fb.callCount("find") == 0 {
		time.Sleep(time.Millisecond)
	}

	// The trigger is disabled while Submitting.
	if _, err := flow.Search(context.Background(), validQuery()); !errors.Is(err, types.ErrSubmitInProgress) {
		t.Fatalf("expected submit-in-progress rejection, got %v", err)
	}

	close(fb.searchGate)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if got := fb.callCount("find"); got != 1 {
		t.Fatalf("exactly one network call expected, got %d", got)
	}

	// After the result is rendered the flow accepts a new submission.
	fb.searchGate = nil
	if _, err := flow.Search(context.Background(), validQuery()); err != nil {
		t.Fatalf("resubmission after completion must work: %v", err)
	}
}

func TestSearch_EmptyResultIsNoRidesFound(t *testing.T) {
	fb := newFakeBackend()
	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	trips, err := flow.Search(context.Background(), validQuery())
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(trips))
	}
	if flow.State() != types.FlowSuccess {
		t.Fatalf("no-rides-found is a success state, got %s", flow.State())
	}
}

func TestSearch_GeoPointRoundTrip(t *testing.T) {
	fb := newFakeBackend()
	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	query := validQuery()
	if _, err := flow.Search(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := fb.lastRide.PickupPoint
	if sent.Latitude != query.PickupPoint.Latitude ||
		sent.Longitude != query.PickupPoint.Longitude ||
		sent.PlaceAddress != query.PickupPoint.PlaceAddress {
		t.Fatalf("pickup point must round-trip unchanged: %+v", sent)
	}
}

func TestSearch_MissingFieldsZeroCalls(t *testing.T) {
	fb := newFakeBackend()
	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	query := validQuery()
	query.DestinationPoint = models.GeoPoint{}

	_, err := flow.Search(context.Background(), query)
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fb.callCount("find") != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

func TestSearch_RequiresSession(t *testing.T) {
	fb := newFakeBackend()
	flow := NewSearchFlow(fb, emptySession(t), testLogger())

	_, err := flow.Search(context.Background(), validQuery())
	if !errors.Is(err, types.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestJoin_SeatUnavailable(t *testing.T) {
	fb := newFakeBackend()
	fb.joinResp = &backend.JoinRideResponseDTO{RideJoined: false, ErrMsg: "Seat unavailable"}

	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	err := flow.Join(context.Background(), validQuery(), "t1")
	if !errors.Is(err, types.ErrServerReported) {
		t.Fatalf("expected server-reported failure, got %v", err)
	}
	if Reason(err) != "Seat unavailable" {
		t.Fatalf("embedded errMsg must be the failure reason, got %q", Reason(err))
	}
}

func TestJoin_Success(t *testing.T) {
	fb := newFakeBackend()
	fb.joinResp = &backend.JoinRideResponseDTO{RideJoined: true}

	flow := NewSearchFlow(fb, loggedInSession(t), testLogger())

	if err := flow.Join(context.Background(), validQuery(), "t1"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if fb.lastRide.TripID != "t1" {
		t.Fatalf("trip id must be carried in the payload, got %q", fb.lastRide.TripID)
	}
}

/* ======================= my rides ======================= */

func TestCancel_MovesBookingToHistory(t *testing.T) {
	fb := newFakeBackend()
	fb.upcoming = []backend.RideBasicInfoDTO{
		{TripID: "t1", TripStatus: string(types.RideAllotted), Seats: "2"},
		{TripID: "t2", TripStatus: string(types.RideAllotted), Seats: "1"},
	}
	fb.cancelResp = &backend.CancelRideResponseDTO{RideCancelled: true}

	flow := NewMyRidesFlow(fb, loggedInSession(t), testLogger())
	ctx := context.Background()

	if err := flow.Cancel(ctx, "t1", "plans changed"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	upcoming, err := flow.Upcoming(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range upcoming {
		if b.TripID == "t1" {
			t.Fatal("cancelled booking must leave the upcoming list")
		}
	}

	history, err := flow.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, b := range history {
		if b.TripID == "t1" && b.Status == types.RideCancelled {
			found = true
		}
	}
	if !found {
		t.Fatal("cancelled booking must appear in history as CANCELLED")
	}
}

func TestCancel_ServerRefusal(t *testing.T) {
	fb := newFakeBackend()
	fb.cancelResp = &backend.CancelRideResponseDTO{RideCancelled: false, ErrMsg: "ride already started"}

	flow := NewMyRidesFlow(fb, loggedInSession(t), testLogger())

	err := flow.Cancel(context.Background(), "t1", "")
	if !errors.Is(err, types.ErrServerReported) {
		t.Fatalf("expected server-reported failure, got %v", err)
	}
	if Reason(err) != "ride already started" {
		t.Fatalf("unexpected reason %q", Reason(err))
	}
}

/* ======================= offer ======================= */

func TestOffer_Success(t *testing.T) {
	fb := newFakeBackend()
	fb.createResp = &backend.CreateTripResponseDTO{TripCreated: true, TripID: "t9"}

	flow := NewOfferFlow(fb, loggedInSession(t), testLogger())

	tripID, err := flow.Create(context.Background(), models.TripOffer{
		VehicleNumber:    "T123ABC",
		PickupPoint:      models.ResolvedPoint(-6.79, 39.21, "Posta"),
		DestinationPoint: models.ResolvedPoint(-6.82, 39.28, "Airport"),
		StartTime:        time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC),
		OfferedSeats:     3,
	})
	if err != nil {
		t.Fatalf("offer failed: %v", err)
	}
	if tripID != "t9" {
		t.Fatalf("unexpected trip id %q", tripID)
	}
}

func TestOffer_EmptyFieldZeroCalls(t *testing.T) {
	fb := newFakeBackend()
	flow := NewOfferFlow(fb, loggedInSession(t), testLogger())

	_, err := flow.Create(context.Background(), models.TripOffer{OfferedSeats: 1})
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fb.callCount("create") != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

/* ======================= vehicles ======================= */

func TestVehicles_List(t *testing.T) {
	fb := newFakeBackend()
	fb.vehicles = []backend.VehicleResponseDTO{
		{Value: "T123ABC", Text: "Corolla White", SeatingCapacity: "4"},
	}

	flow := NewVehiclesFlow(fb, loggedInSession(t), testLogger())

	vehicles, err := flow.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("expected one vehicle, got %d", len(vehicles))
	}
	if vehicles[0].VehicleNumber != "T123ABC" || vehicles[0].SeatingCapacity != 4 {
		t.Fatalf("unexpected vehicle %+v", vehicles[0])
	}
}

func TestVehicles_RegisterRejectsUnknownType(t *testing.T) {
	fb := newFakeBackend()
	flow := NewVehiclesFlow(fb, loggedInSession(t), testLogger())

	err := flow.Register(context.Background(), models.Vehicle{
		VehicleNumber:   "T123ABC",
		VehicleName:     "Corolla",
		VehicleType:     types.VehicleType("BICYCLE"),
		SeatingCapacity: 4,
	})
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fb.callCount("register") != 0 {
		t.Fatal("validation failure must not reach the network")
	}
}

/* ======================= taxonomy ======================= */

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{&FlowError{Kind: types.ErrValidation, Message: "m"}, types.ErrValidation},
		{&FlowError{Kind: types.ErrServerReported, Message: "m"}, types.ErrServerReported},
		{&backend.APIError{Kind: types.ErrTransport, Message: "m"}, types.ErrTransport},
		{types.ErrExternalService, types.ErrExternalService},
		{types.ErrSessionExpired, types.ErrNotAuthenticated},
		{errors.New("anything else"), types.ErrTransport},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

/* ======================= wire decoding ======================= */

func TestMyRides_MalformedSeatsIsTransportError(t *testing.T) {
	fb := newFakeBackend()
	fb.upcoming = []backend.RideBasicInfoDTO{
		{TripID: "t1", TripStatus: string(types.RideAllotted), Seats: "two"},
	}

	flow := NewMyRidesFlow(fb, loggedInSession(t), testLogger())

	_, err := flow.Upcoming(context.Background())
	if !errors.Is(err, types.ErrTransport) {
		t.Fatalf("malformed seat count must surface as a transport error, got %v", err)
	}
}

func TestMyRides_OmittedSeatsMeansZero(t *testing.T) {
	fb := newFakeBackend()
	fb.upcoming = []backend.RideBasicInfoDTO{
		{TripID: "t1", TripStatus: string(types.RideAllotted), Seats: ""},
	}

	flow := NewMyRidesFlow(fb, loggedInSession(t), testLogger())

	bookings, err := flow.Upcoming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 1 || bookings[0].Seats != 0 {
		t.Fatalf("omitted seat field must decode to zero, got %+v", bookings)
	}
}

func TestVehicles_MalformedCapacityIsTransportError(t *testing.T) {
	fb := newFakeBackend()
	fb.vehicles = []backend.VehicleResponseDTO{
		{Value: "T123ABC", Text: "Corolla White", SeatingCapacity: "many"},
	}

	flow := NewVehiclesFlow(fb, loggedInSession(t), testLogger())

	_, err := flow.List(context.Background())
	if !errors.Is(err, types.ErrTransport) {
		t.Fatalf("malformed seating capacity must surface as a transport error, got %v", err)
	}
}

/* ======================= profile ======================= */

func TestProfile_FallsBackToCacheOnFetchFailure(t *testing.T) {
	fb := newFakeBackend()
	fb.err = errors.New("backend down")

	flow := NewProfileFlow(fb, loggedInSession(t), testLogger())

	profile, err := flow.Get(context.Background())
	if err != nil {
		t.Fatalf("cached copy must be served on fetch failure, got %v", err)
	}
	if profile.EmailID != "a@b.com" {
		t.Fatalf("expected the cached profile, got %+v", profile)
	}
	if fb.callCount("userinfo") != 1 {
		t.Fatal("the fetch must still have been attempted")
	}
}

func TestProfile_NoCacheSurfacesFetchError(t *testing.T) {
	fb := newFakeBackend()
	fb.err = errors.New("backend down")

	// Authenticated session without a cached profile.
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	s := session.New(context.Background(), store, testLogger())
	if err := s.Login(context.Background(), "u1", models.UserIdentity{}, ""); err != nil {
		t.Fatal(err)
	}

	flow := NewProfileFlow(fb, s, testLogger())

	_, err := flow.Get(context.Background())
	if err == nil {
		t.Fatal("fetch failure without a cached profile must surface an error")
	}
}
