// internal/writer/register_writer.go
package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ddguard/relay/internal/status"
)

// registerClient is the exact contract the register sink uses.
type registerClient interface {
	WriteRegisters(addr uint16, regs []uint16) error
	Close() error
}

// RegisterSink mirrors the latest reading into a Modbus register block.
// The first write asserts the full block; later writes touch only changed
// slots. Any failure forces a full re-assert on the next delivery.
type RegisterSink struct {
	mu   sync.Mutex
	cli  registerClient
	base uint16

	needFull bool
	last     []uint16
}

func NewRegisterSink(cli registerClient, base uint16) *RegisterSink {
	return &RegisterSink{
		cli:      cli,
		base:     base,
		needFull: true,
	}
}

func (s *RegisterSink) Name() string { return "modbus" }

func (s *RegisterSink) Deliver(ctx context.Context, a status.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cli == nil {
		return errors.New("register writer: no client")
	}

	regs := status.Encode(a)

	// ------------------------------------------------------------
	// Full block write (re-assert)
	// ------------------------------------------------------------
	if s.needFull || len(s.last) != len(regs) {
		if err := s.cli.WriteRegisters(s.base, regs); err != nil {
			s.needFull = true
			return fmt.Errorf("register writer: full block write failed: %w", err)
		}
		s.needFull = false
		s.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per contiguous run of changed slots
	// ------------------------------------------------------------
	var errs []string
	for start := 0; start < len(regs); {
		if regs[start] == s.last[start] {
			start++
			continue
		}
		end := start
		for end < len(regs) && regs[end] != s.last[end] {
			end++
		}

		if err := s.cli.WriteRegisters(s.base+uint16(start), regs[start:end]); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", start, end-1, err))
		} else {
			copy(s.last[start:end], regs[start:end])
		}
		start = end
	}

	if len(errs) > 0 {
		// Any partial failure forces a re-assert on next delivery.
		s.needFull = true
		return errors.New("register writer: " + strings.Join(errs, " | "))
	}
	return nil
}

func (s *RegisterSink) Close() error {
	if s.cli == nil {
		return nil
	}
	return s.cli.Close()
}
