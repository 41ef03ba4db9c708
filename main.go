//go:build !rp2040 && !rp2350

// Command buzzalarm-go runs the alarm firmware against the simulated host
// board and drives a short power-loss scenario, logging through zap.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"buzzalarm-go/services/alarm"
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/platform"
	"buzzalarm-go/services/alarm/trace/zaptrace"
)

func main() {
	levelName := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	slow := flag.Int("slow", 1, "stretch every wake period by this factor")
	flag.Parse()

	level, ok := zaptrace.ParseLevel(*levelName)
	log := zaptrace.NewConsole(level, os.Stdout)
	defer func() { _ = log.Sync() }()
	if !ok {
		log.Warn("unknown log level, using info", zap.String("level", *levelName))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := platform.NewHost()
	h.Ticker.Scale = *slow
	p := h.Platform()
	p.Tone = zaptrace.NewDriver(h.Tone, log)

	go scenario(ctx, h, log, time.Duration(*slow))

	err := alarm.Run(ctx, p, alarm.WithObserver(zaptrace.NewObserver(log)))
	log.Info("stopped", zap.Error(err))
}

// scenario: power up, lose supply, let the pre-alarm run, then press the
// button to acknowledge.
func scenario(ctx context.Context, h *platform.Host, log *zap.Logger, scale time.Duration) {
	steps := []struct {
		after time.Duration
		name  string
		do    func()
	}{
		{0, "supply on", func() { h.Board.SetSupply(true) }},
		{2 * time.Second, "control active", func() { h.Board.SetControl(true) }},
		{time.Second, "control idle", func() { h.Board.SetControl(false) }},
		{time.Second, "supply lost", func() { h.Board.SetSupply(false) }},
		{3 * time.Second, "button down", func() { h.Board.SetButtons(button.Main) }},
		{200 * time.Millisecond, "button up", func() { h.Board.SetButtons(0) }},
	}
	for _, s := range steps {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.after * scale):
		}
		log.Info("scenario", zap.String("step", s.name))
		s.do()
	}
}
