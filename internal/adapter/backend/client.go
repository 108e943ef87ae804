package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/metrics"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/uuid"
)

// Client talks to the carpool backend using the uniform request/response
// envelopes. It carries no session state of its own; callers supply the
// resolved userId per call.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

/* ======================= endpoint methods ======================= */

func (c *Client) Login(ctx context.Context, req LoginRequestDTO) (*LoginResponseDTO, error) {
	// Login has no session yet; the email stands in for userId in the envelope.
	return post[LoginResponseDTO](ctx, c, "/users/login", req.EmailID, req)
}

func (c *Client) Signup(ctx context.Context, req UserInfoDTO) (*SignUpResponseDTO, error) {
	return post[SignUpResponseDTO](ctx, c, "/users/signup", req.EmailID, req)
}

func (c *Client) GetUserInfo(ctx context.Context, userID string) (*UserInfoDTO, error) {
	return get[UserInfoDTO](ctx, c, "/users/"+url.PathEscape(userID))
}

func (c *Client) FindRides(ctx context.Context, userID string, req RideDTO) ([]TripBasicInfoDTO, error) {
	return postList[TripBasicInfoDTO](ctx, c, "/rides/find-ride", userID, req)
}

func (c *Client) JoinTrip(ctx context.Context, userID string, req RideDTO) (*JoinRideResponseDTO, error) {
	return post[JoinRideResponseDTO](ctx, c, "/rides/join-trip", userID, req)
}

func (c *Client) UpcomingRides(ctx context.Context, userID string) ([]RideBasicInfoDTO, error) {
	return postList[RideBasicInfoDTO](ctx, c, "/myrides/upcoming", userID, nil)
}

func (c *Client) HistoryRides(ctx context.Context, userID string) ([]RideBasicInfoDTO, error) {
	return postList[RideBasicInfoDTO](ctx, c, "/myrides/history", userID, nil)
}

func (c *Client) CancelRide(ctx context.Context, userID string, req CancelRideRequestDTO) (*CancelRideResponseDTO, error) {
	return post[CancelRideResponseDTO](ctx, c, "/myrides/cancel", userID, req)
}

func (c *Client) CreateTrip(ctx context.Context, userID string, req OfferRideDTO) (*CreateTripResponseDTO, error) {
	return post[CreateTripResponseDTO](ctx, c, "/ride/create-trip", userID, req)
}

func (c *Client) GetVehicles(ctx context.Context, userID string) ([]VehicleResponseDTO, error) {
	return getList[VehicleResponseDTO](ctx, c, "/vehicles/"+url.PathEscape(userID))
}

func (c *Client) RegisterVehicle(ctx context.Context, userID string, req VehicleRegisterRequestDTO) error {
	_, err := post[struct{}](ctx, c, "/vehicles/register", userID, req)
	return err
}

/* ======================= envelope plumbing ======================= */

// post sends the {userId, requestContent} envelope and unwraps the object
// response envelope.
func post[T any](ctx context.Context, c *Client, endpoint, userID string, content any) (*T, error) {
	ctx = wrap.WithAction(ctx, types.ActionBackendCall)

	body, err := json.Marshal(RequestDTO{UserID: userID, RequestContent: content})
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to encode request envelope: %w", err))
	}

	var envelope ResponseDTO[T]
	if err := c.do(ctx, http.MethodPost, endpoint, body, &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, wrap.Error(ctx, serverError(deref(envelope.ErrorMessage)))
	}
	if envelope.ResponseContent == nil {
		// Void endpoints legitimately return success with no content.
		return new(T), nil
	}
	return envelope.ResponseContent, nil
}

// postList is post for the list-valued envelope variant. A successful
// response with a null or empty list is a valid empty result, not an error.
func postList[T any](ctx context.Context, c *Client, endpoint, userID string, content any) ([]T, error) {
	ctx = wrap.WithAction(ctx, types.ActionBackendCall)

	body, err := json.Marshal(RequestDTO{UserID: userID, RequestContent: content})
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to encode request envelope: %w", err))
	}

	var envelope ResponseListDTO[T]
	if err := c.do(ctx, http.MethodPost, endpoint, body, &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, wrap.Error(ctx, serverError(deref(envelope.ErrorMessage)))
	}
	return envelope.ResponseContent, nil
}

// get covers the pure-path-parameter GET endpoints, which skip the request
// envelope but keep the response one.
func get[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	ctx = wrap.WithAction(ctx, types.ActionBackendCall)

	var envelope ResponseDTO[T]
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, wrap.Error(ctx, serverError(deref(envelope.ErrorMessage)))
	}
	if envelope.ResponseContent == nil {
		return nil, wrap.Error(ctx, serverError("empty response content"))
	}
	return envelope.ResponseContent, nil
}

func getList[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	ctx = wrap.WithAction(ctx, types.ActionBackendCall)

	var envelope ResponseListDTO[T]
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}

	if !envelope.Success {
		return nil, wrap.Error(ctx, serverError(deref(envelope.ErrorMessage)))
	}
	return envelope.ResponseContent, nil
}

// do performs one HTTP round trip and decodes the response envelope into dst.
// Any network failure or non-2xx status is a transport error; the
// server-reported success flag is left to the callers.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, dst any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	// Every round trip gets its own correlation id, carried in both the
	// outgoing header and the log context.
	requestID := uuid.New().String()
	ctx = types.WithRequestIDContext(ctx, requestID)
	ctx = wrap.WithRequestID(ctx, requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	metrics.BackendRequestsInFlight.Inc()
	resp, err := c.http.Do(req)
	metrics.BackendRequestsInFlight.Dec()
	if err != nil {
		metrics.RecordBackendRequest(endpoint, 0, time.Since(start))
		c.log.Warn(ctx, "backend request failed", "endpoint", endpoint, "method", method)
		return wrap.Error(ctx, transportError(fmt.Sprintf("request to %s failed: %v", endpoint, err)))
	}
	defer resp.Body.Close()

	metrics.RecordBackendRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wrap.Error(ctx, transportError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, endpoint)))
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(dst); err != nil {
		return wrap.Error(ctx, transportError(fmt.Sprintf("malformed response from %s: %v", endpoint, err)))
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
