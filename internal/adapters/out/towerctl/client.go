// Package towerctl is the HTTP client for tower controllers. A controller
// exposes four operations under its base URL:
//
//	POST /launch     {"package_id", "ddt_name", "rack_column"}
//	GET  /status     -> {"status": "Processing" | "Delivered" | "Failed" | ...}
//	POST /reset
//	POST /door-open  {"cmd": "rack_02"}
package towerctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
)

const (
	DefaultCommandTimeout = 10 * time.Second
	DefaultStatusTimeout  = 5 * time.Second

	// maxStatusBody bounds how much of a status answer is read.
	maxStatusBody = 64 << 10
)

type Config struct {
	// CommandTimeout bounds launch, reset and door-open calls.
	CommandTimeout time.Duration
	// StatusTimeout bounds status polls.
	StatusTimeout time.Duration
}

// Client implements ports.TowerController.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *slog.Logger
}

// NewClient uses http.DefaultTransport when httpClient is nil. Zero timeouts
// fall back to the defaults.
func NewClient(httpClient *http.Client, cfg Config, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = DefaultStatusTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger.With("component", "towerctl"),
	}
}

type launchPayload struct {
	PackageID  string `json:"package_id"`
	DDTName    string `json:"ddt_name"`
	RackColumn string `json:"rack_column"`
}

type doorPayload struct {
	Cmd string `json:"cmd"`
}

type statusPayload struct {
	Status string `json:"status"`
}

func (c *Client) Launch(ctx context.Context, endpoint tower.ControlEndpoint, request ports.LaunchRequest) error {
	status, err := c.post(ctx, endpoint.URL("/launch"), launchPayload{
		PackageID:  request.PackageID,
		DDTName:    request.TowerName,
		RackColumn: request.RackColumn,
	}, c.cfg.CommandTimeout)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("launch rejected: HTTP %d", status)
	}
	return nil
}

func (c *Client) PollStatus(ctx context.Context, endpoint tower.ControlEndpoint) (ports.RemoteStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.StatusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL("/status"), nil)
	if err != nil {
		return ports.RemoteUnknown, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.RemoteUnknown, fmt.Errorf("%w: %w", ports.ErrRemoteTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("status answered with non-200", "endpoint", endpoint.String(), "http_status", resp.StatusCode)
		return ports.RemoteUnknown, nil
	}

	var payload statusPayload
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxStatusBody)).Decode(&payload); err != nil {
		c.logger.Debug("malformed status body", "endpoint", endpoint.String(), "error", err)
		return ports.RemoteUnknown, nil
	}

	return parseStatus(payload.Status), nil
}

func (c *Client) Reset(ctx context.Context, endpoint tower.ControlEndpoint) {
	status, err := c.post(ctx, endpoint.URL("/reset"), nil, c.cfg.CommandTimeout)
	if err != nil {
		c.logger.Warn("reset failed", "endpoint", endpoint.String(), "error", err)
		return
	}
	if status != http.StatusOK {
		c.logger.Warn("reset answered with non-200", "endpoint", endpoint.String(), "http_status", status)
	}
}

func (c *Client) OpenDoor(ctx context.Context, endpoint tower.ControlEndpoint, rackColumn string) error {
	status, err := c.post(ctx, endpoint.URL("/door-open"), doorPayload{Cmd: rackColumn}, c.cfg.CommandTimeout)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("door-open rejected: HTTP %d", status)
	}
	return nil
}

// post sends body as JSON and returns the response status. A nil body sends
// no payload. Transport failures wrap ports.ErrRemoteTransport.
func (c *Client) post(ctx context.Context, url string, body any, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ports.ErrRemoteTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxStatusBody))

	return resp.StatusCode, nil
}

func parseStatus(s string) ports.RemoteStatus {
	switch s {
	case "Processing":
		return ports.RemoteProcessing
	case "Delivered":
		return ports.RemoteDelivered
	case "Failed":
		return ports.RemoteFailed
	default:
		return ports.RemoteUnknown
	}
}
