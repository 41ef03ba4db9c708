// services/alarm/platform/rp2.go
//go:build rp2040

package platform

import (
	"context"
	"device/arm"
	"device/rp"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/tone"

	"buzzalarm-go/errcode"
	"buzzalarm-go/services/alarm"
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/tickflag"
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

// Pins is the board wiring. The button and supply sense are interrupt
// sources; the control input is sampled on every tick.
type Pins struct {
	Supply  machine.Pin
	Button  machine.Pin
	Control machine.Pin
	Buzzer  machine.Pin
	LEDs    [types.LEDCount]machine.Pin

	SupplyActiveHigh bool
	ButtonActiveLow  bool
}

// DefaultPins matches the Pico carrier: GP2 supply sense, GP3 button to
// ground, GP4 control input, GP16 buzzer, on-board LED plus GP14/GP15.
func DefaultPins() Pins {
	return Pins{
		Supply:           machine.GP2,
		Button:           machine.GP3,
		Control:          machine.GP4,
		Buzzer:           machine.GP16,
		LEDs:             [types.LEDCount]machine.Pin{machine.LED, machine.GP14, machine.GP15},
		SupplyActiveHigh: true,
		ButtonActiveLow:  true,
	}
}

// NewRP2 configures the pins, the buzzer PWM slice, the edge interrupts and
// the wake alarm, and returns the platform for alarm.Run.
func NewRP2(p Pins, flag *tickflag.Flag) (alarm.Platform, error) {
	const op = "platform"
	b := &rp2Board{pins: p}
	p.Supply.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	p.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	p.Control.Configure(machine.PinConfig{Mode: machine.PinInput})
	for _, led := range p.LEDs {
		led.Configure(machine.PinConfig{Mode: machine.PinOutput})
		led.Low()
	}

	fire := func(machine.Pin) { flag.Set() }
	if err := p.Supply.SetInterrupt(machine.PinToggle, fire); err != nil {
		return alarm.Platform{}, errcode.Wrap(errcode.UnknownPin, op, err)
	}
	if err := p.Button.SetInterrupt(machine.PinToggle, fire); err != nil {
		return alarm.Platform{}, errcode.Wrap(errcode.UnknownPin, op, err)
	}

	bz, err := newRP2Tone(p.Buzzer)
	if err != nil {
		return alarm.Platform{}, errcode.Wrap(errcode.PWMSetup, op, err)
	}

	return alarm.Platform{
		Board: b,
		Tone:  bz,
		Ticks: newRP2Alarm(flag),
		CPU:   &rp2CPU{flag: flag},
		Flag:  flag,
	}, nil
}

// ----------------------------- board -----------------------------------------

type rp2Board struct {
	pins Pins
}

func (b *rp2Board) MainSupplyPresent() bool {
	return b.pins.Supply.Get() == b.pins.SupplyActiveHigh
}

func (b *rp2Board) RawButtons() button.Mask {
	if b.pins.Button.Get() != b.pins.ButtonActiveLow {
		return button.Main
	}
	return 0
}

func (b *rp2Board) ControlLevel() bool { return b.pins.Control.Get() }

func (b *rp2Board) SetLED(id types.LED, on bool) {
	if id < types.LEDCount {
		b.pins.LEDs[id].Set(on)
	}
}

// ----------------------------- buzzer ----------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetPeriod(period uint64) error
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// Tone pitches sit around the piezo resonance.
var notes = [types.ToneCount]tone.Note{
	types.Tone1: tone.A6,
	types.Tone2: tone.C7,
	types.Tone3: tone.E7,
	types.Tone4: tone.A7,
}

// Duty as a divisor of the PWM top; 2 is a square wave.
var dutyDiv = [types.VolumeCount]uint32{
	types.VolumeLow:    32,
	types.VolumeMedium: 8,
	types.VolumeHigh:   2,
}

type rp2Tone struct {
	pwm pwmCtrl
	ch  uint8
}

func newRP2Tone(pin machine.Pin) (*rp2Tone, error) {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil, err
	}
	pwm := pwmGroupBySlice(slice)
	if err := pwm.Configure(machine.PWMConfig{Period: uint64(notes[types.Tone1])}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	pwm.Set(ch, 0)
	return &rp2Tone{pwm: pwm, ch: ch}, nil
}

func (t *rp2Tone) Drive(tn types.Tone, v types.Volume) {
	if tn == types.ToneSilence || tn >= types.ToneCount || v == types.VolumeSilent || v >= types.VolumeCount {
		t.Stop()
		return
	}
	if err := t.pwm.SetPeriod(uint64(notes[tn])); err != nil {
		t.Stop()
		return
	}
	t.pwm.Set(t.ch, mathx.Max(t.pwm.Top()/dutyDiv[v], 1))
}

func (t *rp2Tone) Stop() { t.pwm.Set(t.ch, 0) }

// ----------------------------- wake timer ------------------------------------

// The runtime owns timer alarm 0; the wake timer uses alarm 3.
const wakeAlarmBit = 1 << 3

var wakeAlarm *rp2Alarm

type rp2Alarm struct {
	flag     *tickflag.Flag
	periodUs uint32
	running  bool
	irq      interrupt.Interrupt
}

func newRP2Alarm(flag *tickflag.Flag) *rp2Alarm {
	a := &rp2Alarm{flag: flag, periodUs: uint32(types.WakeSlow.Duration().Microseconds())}
	wakeAlarm = a
	a.irq = interrupt.New(rp.IRQ_TIMER_IRQ_3, handleWakeAlarm)
	a.irq.SetPriority(0xC0)
	return a
}

func handleWakeAlarm(interrupt.Interrupt) {
	a := wakeAlarm
	rp.TIMER.INTR.Set(wakeAlarmBit)
	if a == nil {
		return
	}
	if a.running {
		a.arm()
	}
	a.flag.Set()
}

func (a *rp2Alarm) arm() {
	rp.TIMER.ALARM3.Set(rp.TIMER.TIMERAWL.Get() + a.periodUs)
}

// SetPeriod takes effect from the next expiry.
func (a *rp2Alarm) SetPeriod(p types.WakePeriod) {
	a.periodUs = uint32(p.Duration().Microseconds())
}

func (a *rp2Alarm) Start() {
	if a.running {
		return
	}
	a.running = true
	rp.TIMER.INTE.SetBits(wakeAlarmBit)
	a.irq.Enable()
	a.arm()
}

func (a *rp2Alarm) Stop() {
	a.running = false
	rp.TIMER.ARMED.Set(wakeAlarmBit)
	rp.TIMER.INTE.ClearBits(wakeAlarmBit)
	rp.TIMER.INTR.Set(wakeAlarmBit)
}

// ----------------------------- CPU -------------------------------------------

const scrSleepDeep = 1 << 2

type rp2CPU struct {
	flag *tickflag.Flag
}

// Wait masks interrupts, checks the flag and only then executes WFI, so an
// edge arriving between the check and the sleep still wakes the core.
func (c *rp2CPU) Wait(ctx context.Context, depth types.WaitDepth) {
	if ctx.Err() != nil {
		return
	}
	mask := arm.DisableInterrupts()
	if !c.flag.Pending() {
		if depth == types.WaitDeep {
			arm.SCB.SCR.SetBits(scrSleepDeep)
		}
		arm.Asm("wfi")
		arm.SCB.SCR.ClearBits(scrSleepDeep)
	}
	arm.EnableInterrupts(mask)
}
