// internal/pipeline/handler.go
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/ddguard/relay/internal/reading"
	"github.com/ddguard/relay/internal/status"
	"github.com/ddguard/relay/internal/writer"
)

// Handler interprets each acquired reading and hands the labelled
// assessment to the relay. The relay decides which sinks see readings
// that are not usable.
// It runs while the acquisition flag is held, so the next cycle cannot
// start before every sink has returned.
type Handler struct {
	Thresholds status.Thresholds
	Relay      writer.Writer
	Log        *zap.Logger
}

func (h *Handler) Handle(ctx context.Context, cycleID string, r reading.Reading) {
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("cycle", cycleID))

	a := status.Assess(r, h.Thresholds)

	fields := []zap.Field{
		zap.String("condition", a.Condition.Name),
		zap.Int("status_code", int(r.Status)),
	}

	switch {
	case !a.Known:
		log.Error("unknown sensor status", append(fields, zap.String("label", a.Condition.Label))...)
	case !a.Usable:
		log.Warn(a.Condition.Label, fields...)
	default:
		log.Info(a.Condition.Label, append(fields,
			zap.Int("bgl", r.BGL),
			zap.Stringer("band", a.Band),
		)...)
	}

	if h.Relay == nil {
		return
	}
	if err := h.Relay.Deliver(ctx, a); err != nil {
		log.Error("relay incomplete", zap.Error(err))
		return
	}
	log.Debug("relay complete")
}
