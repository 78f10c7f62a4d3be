// internal/writer/nightscout/client.go
package nightscout

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	entriesPath      = "/api/v1/entries"
	deviceStatusPath = "/api/v1/devicestatus"
)

// Entry is one Nightscout sensor glucose value.
type Entry struct {
	Type       string `json:"type"`
	SGV        int    `json:"sgv"`
	Direction  string `json:"direction"`
	Date       int64  `json:"date"`
	DateString string `json:"dateString"`
	Device     string `json:"device"`
}

// DeviceStatus carries pump state next to the glucose entry.
type DeviceStatus struct {
	Device    string     `json:"device"`
	CreatedAt string     `json:"created_at"`
	Pump      PumpStatus `json:"pump"`
}

type PumpStatus struct {
	Clock   string   `json:"clock"`
	Battery *Battery `json:"battery,omitempty"`
	IOB     *IOB     `json:"iob,omitempty"`
}

type Battery struct {
	Percent int `json:"percent"`
}

type IOB struct {
	BolusIOB  float64 `json:"bolusiob"`
	Timestamp string  `json:"timestamp"`
}

// Client uploads to one Nightscout site.
// One request per call, no automatic retries.
type Client struct {
	http *resty.Client
}

type Config struct {
	Server    string
	APISecret string
	Timeout   time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Server == "" {
		return nil, errors.New("writer nightscout: server required")
	}
	if cfg.APISecret == "" {
		return nil, errors.New("writer nightscout: api secret required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Server, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("api-secret", HashSecret(cfg.APISecret))

	return &Client{http: http}, nil
}

// HashSecret returns the SHA-1 hex digest Nightscout expects in the api-secret header.
func HashSecret(secret string) string {
	sum := sha1.Sum([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) UploadEntries(ctx context.Context, entries []Entry) error {
	return c.post(ctx, entriesPath, entries)
}

func (c *Client) UploadDeviceStatus(ctx context.Context, ds DeviceStatus) error {
	return c.post(ctx, deviceStatusPath, []DeviceStatus{ds})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("writer nightscout: post %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("writer nightscout: post %s: status %d: %s",
			path, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
