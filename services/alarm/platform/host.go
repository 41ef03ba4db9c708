// services/alarm/platform/host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"sync"
	"time"

	"buzzalarm-go/services/alarm"
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/tickflag"
	"buzzalarm-go/types"
)

// Host bundles the simulated board, buzzer, wake timer and CPU.
type Host struct {
	Board  *HostBoard
	Tone   *HostTone
	Ticker *HostTicker
	CPU    *HostCPU
	Flag   *tickflag.Flag
}

func NewHost() *Host {
	f := tickflag.New()
	return &Host{
		Board:  &HostBoard{flag: f},
		Tone:   &HostTone{},
		Ticker: &HostTicker{flag: f, period: types.WakeSlow},
		CPU:    &HostCPU{flag: f},
		Flag:   f,
	}
}

func (h *Host) Platform() alarm.Platform {
	return alarm.Platform{
		Board: h.Board,
		Tone:  h.Tone,
		Ticks: h.Ticker,
		CPU:   h.CPU,
		Flag:  h.Flag,
	}
}

// ----------------------------- board -----------------------------------------

// HostBoard holds input levels set by tests or the demo. Supply and button
// changes fire the tick flag the way pin-change interrupts do on hardware;
// the control input is polled only.
type HostBoard struct {
	mu      sync.RWMutex
	flag    *tickflag.Flag
	supply  bool
	control bool
	raw     button.Mask
	leds    [types.LEDCount]bool
	writes  int
}

func (b *HostBoard) MainSupplyPresent() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.supply
}

func (b *HostBoard) RawButtons() button.Mask {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.raw
}

func (b *HostBoard) ControlLevel() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.control
}

func (b *HostBoard) SetLED(id types.LED, on bool) {
	if id >= types.LEDCount {
		return
	}
	b.mu.Lock()
	b.leds[id] = on
	b.writes++
	b.mu.Unlock()
}

func (b *HostBoard) SetSupply(on bool) {
	b.mu.Lock()
	edge := b.supply != on
	b.supply = on
	b.mu.Unlock()
	if edge {
		b.flag.Set()
	}
}

func (b *HostBoard) SetButtons(m button.Mask) {
	b.mu.Lock()
	edge := b.raw != m
	b.raw = m
	b.mu.Unlock()
	if edge {
		b.flag.Set()
	}
}

func (b *HostBoard) SetControl(level bool) {
	b.mu.Lock()
	b.control = level
	b.mu.Unlock()
}

func (b *HostBoard) LED(id types.LED) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.leds[id]
}

// LEDWrites counts SetLED calls.
func (b *HostBoard) LEDWrites() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// ----------------------------- buzzer ----------------------------------------

// HostTone records what a tone driver would produce.
type HostTone struct {
	mu     sync.Mutex
	tone   types.Tone
	vol    types.Volume
	on     bool
	drives int
}

func (t *HostTone) Drive(tone types.Tone, vol types.Volume) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drives++
	if tone == types.ToneSilence || vol == types.VolumeSilent {
		t.on = false
		return
	}
	t.tone, t.vol, t.on = tone, vol, true
}

func (t *HostTone) Stop() {
	t.mu.Lock()
	t.on = false
	t.mu.Unlock()
}

// Sounding reports the current output and whether it is audible.
func (t *HostTone) Sounding() (types.Tone, types.Volume, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tone, t.vol, t.on
}

func (t *HostTone) Drives() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drives
}

// ----------------------------- wake timer ------------------------------------

// HostTicker sets the tick flag from a time.Ticker goroutine. Scale stretches
// every period, which slows the simulation down for interactive runs.
type HostTicker struct {
	mu      sync.Mutex
	flag    *tickflag.Flag
	period  types.WakePeriod
	Scale   int
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func (h *HostTicker) SetPeriod(p types.WakePeriod) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p == h.period {
		return
	}
	h.period = p
	if h.running {
		h.halt()
		h.launch()
	}
}

func (h *HostTicker) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return
	}
	h.launch()
}

func (h *HostTicker) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.halt()
	}
}

func (h *HostTicker) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *HostTicker) Period() types.WakePeriod {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.period
}

// caller holds lock
func (h *HostTicker) launch() {
	d := h.period.Duration()
	if h.Scale > 1 {
		d *= time.Duration(h.Scale)
	}
	stop, done := make(chan struct{}), make(chan struct{})
	h.stop, h.done = stop, done
	h.running = true
	go func() {
		defer close(done)
		tk := time.NewTicker(d)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				h.flag.Set()
			}
		}
	}()
}

// caller holds lock
func (h *HostTicker) halt() {
	close(h.stop)
	<-h.done
	h.running = false
}

// ----------------------------- CPU -------------------------------------------

// HostCPU blocks until the tick flag is signalled or ctx ends. Both depths
// behave the same; they are only counted.
type HostCPU struct {
	mu    sync.Mutex
	flag  *tickflag.Flag
	waits [2]int
}

func (c *HostCPU) Wait(ctx context.Context, depth types.WaitDepth) {
	c.mu.Lock()
	if int(depth) < len(c.waits) {
		c.waits[depth]++
	}
	c.mu.Unlock()
	if c.flag.Pending() {
		return
	}
	select {
	case <-c.flag.Wake():
	case <-ctx.Done():
	}
}

// Waits returns the number of light and deep waits so far.
func (c *HostCPU) Waits() (light, deep int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waits[types.WaitLight], c.waits[types.WaitDeep]
}
