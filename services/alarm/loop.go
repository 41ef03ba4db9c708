// services/alarm/loop.go

// Package alarm wires the supervisor to a platform and runs the main loop.
package alarm

import (
	"context"

	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/buzzer"
	"buzzalarm-go/services/alarm/config"
	"buzzalarm-go/services/alarm/supervisor"
	"buzzalarm-go/services/alarm/tickflag"
	"buzzalarm-go/types"
)

// CPU parks the core until the next interrupt. Wait may return early; the
// loop re-checks the tick flag after every return.
type CPU interface {
	Wait(ctx context.Context, depth types.WaitDepth)
}

// Platform is everything the loop needs from the hardware. Flag is shared
// with the interrupt handlers (tick timer and pin-change edges).
type Platform struct {
	Board supervisor.Board
	Tone  buzzer.Driver
	Ticks supervisor.TickSource
	CPU   CPU
	Flag  *tickflag.Flag
}

type Option func(*supervisor.Options)

func WithTiming(t config.Timing) Option {
	return func(o *supervisor.Options) { o.Timing = t }
}

func WithButtons(c button.Config) Option {
	return func(o *supervisor.Options) { o.Buttons = c }
}

func WithSettings(s types.Settings) Option {
	return func(o *supervisor.Options) { o.Settings = s }
}

func WithObserver(obs supervisor.Observer) Option {
	return func(o *supervisor.Options) { o.Observer = obs }
}

// Run builds the supervisor, starts the wake timer and serves ticks until
// ctx is cancelled. Firmware passes context.Background() and never returns.
func Run(ctx context.Context, p Platform, opts ...Option) error {
	o := supervisor.DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	s, err := supervisor.New(p.Board, p.Tone, p.Ticks, o)
	if err != nil {
		return err
	}
	s.Start()

	for {
		if err := ctx.Err(); err != nil {
			s.Sequencer().Stop()
			return err
		}
		if !p.Flag.Take() {
			p.CPU.Wait(ctx, s.WaitDepth())
			continue
		}
		running := s.TickRunning()
		s.Step()
		if running && !s.TickRunning() {
			settle(p)
		}
	}
}

// settle drops a tick latched just before the wake timer stopped, so Sleep
// is not woken by it. Supply already present is kept as a wake, since its
// edge may have been the one dropped. A dropped button edge needs no such
// care: the release edge still wakes the device.
func settle(p Platform) {
	p.Flag.Take()
	if p.Board.MainSupplyPresent() {
		p.Flag.Set()
	}
}
