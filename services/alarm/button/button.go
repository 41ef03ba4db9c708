// Package button turns a raw per-call button bitmask into one-shot edge and
// hold actions. One bit per button; Process must be called at a fixed period
// from the main loop only.
package button

import (
	"buzzalarm-go/errcode"
	"buzzalarm-go/x/mathx"
)

// Mask holds one bit per button.
type Mask uint8

const maxButtons = 8

// Main is the single physical button of the alarm.
const Main Mask = 0x01

// Action selects the optional outputs a Processor computes. Down is always on.
type Action uint8

const (
	ActionUp      Action = 1 << iota // set once on release
	ActionHold                       // set once after LongPressDelay calls pressed
	ActionRep                        // set on press, then repeatedly after RepeatDelay
	ActionUpShort                    // release before LongPressDelay
	ActionUpLong                     // release after LongPressDelay
	ActionToggle                     // flips on every press
)

const timed = ActionHold | ActionRep | ActionUpShort | ActionUpLong

// Config is fixed at construction. All delays are in Process calls.
type Config struct {
	Actions        Action
	LongPressDelay uint16
	RepeatDelay    uint16
	RepeatPeriod   uint16
	// InvertMask is XORed into every raw sample (for active-low buttons).
	InvertMask Mask
}

// DefaultConfig is tuned for a 10 ms call period.
func DefaultConfig() Config {
	return Config{
		Actions:        ActionUp | ActionHold,
		LongPressDelay: 100,
		RepeatDelay:    60,
		RepeatPeriod:   10,
	}
}

func (c Config) Has(a Action) bool { return c.Actions&a == a }

func (c Config) Validate() error {
	const op = "button"
	if c.Actions&(ActionHold|ActionUpShort|ActionUpLong) != 0 && c.LongPressDelay == 0 {
		return errcode.New(errcode.OutOfRange, op, "long press delay must be at least 1")
	}
	if c.Has(ActionRep) && (c.RepeatDelay == 0 || c.RepeatPeriod == 0) {
		return errcode.New(errcode.OutOfRange, op, "repeat delay and period must be at least 1")
	}
	return nil
}

// State is the processed output. Everything except Raw and Toggle is a pulse
// valid for one Process call.
type State struct {
	Raw     Mask
	Down    Mask
	Up      Mask
	Hold    Mask
	Rep     Mask
	UpShort Mask
	UpLong  Mask
	Toggle  Mask
}

type Processor struct {
	cfg  Config
	st   State
	prev Mask
	held [maxButtons]uint16 // saturating press duration
	rep  [maxButtons]uint16 // calls until the next repeat pulse
}

func New(cfg Config) *Processor { return &Processor{cfg: cfg} }

// Process consumes one raw sample and recomputes every action mask.
func (p *Processor) Process(raw Mask) {
	raw ^= p.cfg.InvertMask
	pressed := raw &^ p.prev
	released := p.prev &^ raw

	p.st.Raw = raw
	p.st.Down = pressed
	p.st.Up = 0
	p.st.Hold = 0
	p.st.Rep = 0
	p.st.UpShort = 0
	p.st.UpLong = 0

	if p.cfg.Has(ActionUp) {
		p.st.Up = released
	}
	if p.cfg.Has(ActionToggle) {
		p.st.Toggle ^= pressed
	}
	if p.cfg.Actions&timed != 0 {
		for b := 0; b < maxButtons; b++ {
			bit := Mask(1) << b
			switch {
			case pressed&bit != 0:
				p.onPress(b, bit)
			case raw&bit != 0:
				p.onHeld(b, bit)
			case released&bit != 0:
				p.onRelease(b, bit)
			}
		}
	}
	p.prev = raw
}

func (p *Processor) onPress(b int, bit Mask) {
	p.held[b] = 1
	p.rep[b] = 0
	if p.cfg.Has(ActionRep) {
		p.st.Rep |= bit
	}
	if p.cfg.Has(ActionHold) && p.cfg.LongPressDelay <= 1 {
		p.st.Hold |= bit
	}
}

func (p *Processor) onHeld(b int, bit Mask) {
	before := p.held[b]
	mathx.SatInc(&p.held[b])
	long := p.cfg.LongPressDelay
	if p.cfg.Has(ActionHold) && before < long && p.held[b] >= long {
		p.st.Hold |= bit
	}
	if p.cfg.Has(ActionRep) && p.held[b] >= p.cfg.RepeatDelay {
		if p.rep[b] == 0 {
			p.st.Rep |= bit
			p.rep[b] = p.cfg.RepeatPeriod
		}
		p.rep[b]--
	}
}

func (p *Processor) onRelease(b int, bit Mask) {
	long := p.held[b] >= p.cfg.LongPressDelay
	if p.cfg.Has(ActionUpShort) && !long {
		p.st.UpShort |= bit
	}
	if p.cfg.Has(ActionUpLong) && long {
		p.st.UpLong |= bit
	}
	p.held[b] = 0
	p.rep[b] = 0
}

// State returns a copy of the latest output.
func (p *Processor) State() State { return p.st }

// Clear drops pending one-shot actions. Raw, Toggle and press timers are kept,
// so a button held across the call does not produce a second Down.
func (p *Processor) Clear() {
	raw, tog := p.st.Raw, p.st.Toggle
	p.st = State{Raw: raw, Toggle: tog}
}

// Reset forgets everything, including the previous sample.
func (p *Processor) Reset() {
	p.st = State{}
	p.prev = 0
	p.held = [maxButtons]uint16{}
	p.rep = [maxButtons]uint16{}
}
