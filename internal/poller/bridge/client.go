// internal/poller/bridge/client.go
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ddguard/relay/internal/reading"
)

// Client implements poller.Driver by running the radio-bridge helper.
// The helper performs the protocol exchange with the pump and prints one
// JSON live data object on stdout. One process per fetch.
type Client struct {
	command []string
	timeout time.Duration
}

// Config is minimal driver config.
type Config struct {
	Command []string
	Timeout time.Duration
}

// New creates a bridge client. The helper is not started here.
func New(cfg Config) (*Client, error) {
	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		return nil, errors.New("bridge: command required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &Client{
		command: append([]string(nil), cfg.Command...),
		timeout: cfg.Timeout,
	}, nil
}

// FetchLive runs the helper once and decodes its output.
func (c *Client) FetchLive(ctx context.Context) (reading.Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return reading.Raw{}, fmt.Errorf("bridge: %s: %w", c.command[0], ctx.Err())
		}
		return reading.Raw{}, fmt.Errorf("bridge: %s: %w%s", c.command[0], err, tail(stderr.String()))
	}

	return decode(stdout.Bytes())
}

// decode takes the last non-empty line: helpers tend to print progress
// chatter before the data object.
func decode(out []byte) (reading.Raw, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return reading.Raw{}, errors.New("bridge: empty output")
	}

	var raw reading.Raw
	if err := json.Unmarshal([]byte(last), &raw); err != nil {
		return reading.Raw{}, fmt.Errorf("bridge: decode live data: %w", err)
	}
	return raw, nil
}

// stderrTail is the byte budget for stderr quoted in errors.
const stderrTail = 200

func tail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
		// drop continuation bytes of a rune cut by the slice
		for len(s) > 0 && !utf8.RuneStart(s[0]) {
			s = s[1:]
		}
	}
	return " (stderr: " + s + ")"
}
