// Package supervisor is the top-level power/alarm state machine.
//
// Step is called once per wake-timer tick from the main loop. It samples the
// board, runs the button processor and tone sequencer on the slow pass, then
// dispatches the current state. A handler may ask for the new state to be
// evaluated again within the same Step; this is bounded because every
// re-entry changes state.
package supervisor

import (
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/buzzer"
	"buzzalarm-go/services/alarm/config"
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

// Board is the sensor and feedback side of the hardware.
type Board interface {
	MainSupplyPresent() bool
	RawButtons() button.Mask
	// ControlLevel is the raw level of the monitored control input;
	// polarity is applied from Settings.
	ControlLevel() bool
	SetLED(id types.LED, on bool)
}

// TickSource is the periodic wake timer.
type TickSource interface {
	SetPeriod(p types.WakePeriod)
	Start()
	Stop()
}

// Observer is told about every state change. It runs on the main loop and
// must not block.
type Observer interface {
	Transition(step uint32, from, to types.State)
}

type Options struct {
	Timing   config.Timing
	Buttons  button.Config
	Settings types.Settings
	Observer Observer
}

func DefaultOptions() Options {
	return Options{
		Timing:   config.Default(),
		Buttons:  button.DefaultConfig(),
		Settings: types.DefaultSettings(),
	}
}

type inputs struct {
	supply  bool
	control bool
}

// controlTrack is the Run-state view of the control input.
type controlTrack struct {
	known  bool
	active bool
	idle   uint32 // fast ticks since the last change
	firing bool   // timeout alarm owns the buzzer
}

type Supervisor struct {
	board   Board
	ticks   TickSource
	seq     *buzzer.Sequencer
	buttons *button.Processor
	obs     Observer

	settings types.Settings
	lim      limits

	state   types.State
	t       Timers
	steps   uint32
	in      inputs
	vol     types.Volume
	ctl     controlTrack
	period  types.WakePeriod
	running bool
	leds    [types.LEDCount]bool
}

// New validates o and returns a supervisor in Wakeup. The tick source is not
// touched until Start.
func New(b Board, drv buzzer.Driver, ts TickSource, o Options) (*Supervisor, error) {
	if err := o.Timing.Validate(); err != nil {
		return nil, err
	}
	if err := o.Buttons.Validate(); err != nil {
		return nil, err
	}
	vol := o.Settings.InitialVolume
	if vol >= types.VolumeCount {
		vol = types.VolumeHigh
	}
	return &Supervisor{
		board:    b,
		ticks:    ts,
		seq:      buzzer.New(drv, vol),
		buttons:  button.New(o.Buttons),
		obs:      o.Observer,
		settings: o.Settings,
		lim:      newLimits(o.Timing),
		state:    types.StateWakeup,
		vol:      vol,
		period:   periodFor(types.StateWakeup),
	}, nil
}

// Start clears the outputs and starts the wake timer for the current state.
func (s *Supervisor) Start() {
	for i := types.LED(0); i < types.LEDCount; i++ {
		s.leds[i] = false
		s.board.SetLED(i, false)
	}
	s.seq.Stop()
	s.running = false
	s.applyPeriod(s.state)
}

// Step runs one main-loop pass.
func (s *Supervisor) Step() {
	mathx.SatInc(&s.steps)
	mathx.SatInc(&s.t.StateAge)

	s.in = inputs{
		supply:  s.board.MainSupplyPresent(),
		control: s.board.ControlLevel(),
	}
	raw := s.board.RawButtons()
	if s.slowPass() {
		s.buttons.Process(raw)
		s.seq.Process()
	}

	for i := 0; i < int(types.StateCount); i++ {
		prev := s.state
		if !s.dispatch() || s.state == prev {
			break
		}
	}

	// Actions are valid for the pass that produced them only.
	s.buttons.Clear()
	s.showBuzzer()
}

func (s *Supervisor) slowPass() bool {
	if s.period != types.WakeFast {
		return true
	}
	mathx.SatInc(&s.t.Tick)
	if s.t.Tick < s.lim.slowDiv {
		return false
	}
	s.t.Tick = 0
	return true
}

// dispatch runs the handler of the current state and reports whether the
// resulting state should be evaluated again right away.
func (s *Supervisor) dispatch() bool {
	switch s.state {
	case types.StateWakeup:
		return s.wakeup()
	case types.StateNoSupply, types.StateRunSetupVolume:
		return s.setupVolume()
	case types.StateNoSupplyExit, types.StateRunSetupVolumeExit:
		return s.setupExit()
	case types.StateRun:
		return s.run()
	case types.StatePreAlarm:
		return s.preAlarm()
	case types.StateAlarm:
		return s.alarm()
	case types.StateSleep:
		return s.sleep()
	default:
		return false
	}
}

// switchTo applies a transition: counters zeroed, buzzer silenced, pending
// button actions dropped, LEDs off, then the new state's wake period and
// entry actions.
func (s *Supervisor) switchTo(st types.State) {
	from := s.state
	s.state = st
	s.t = Timers{}
	s.seq.Stop()
	s.buttons.Clear()
	for i := types.LED(0); i < types.LEDCount; i++ {
		s.setLED(i, false)
	}
	s.applyPeriod(st)
	s.enter(from, st)
	if s.obs != nil {
		s.obs.Transition(s.steps, from, st)
	}
}

func (s *Supervisor) enter(from, st types.State) {
	switch st {
	case types.StateRun:
		s.ctl = controlTrack{}
		if from == types.StateWakeup && s.settings.Greeting {
			s.play(greeting[:])
		}
	case types.StateNoSupply, types.StateRunSetupVolume:
		s.showVolume()
	case types.StateNoSupplyExit, types.StateRunSetupVolumeExit:
		s.seq.PutTone(confirmTone, s.lim.confirmMs)
	}
}

func periodFor(st types.State) types.WakePeriod {
	if st == types.StateRun {
		return types.WakeFast
	}
	return types.WakeSlow
}

func (s *Supervisor) applyPeriod(st types.State) {
	if st == types.StateSleep {
		if s.running {
			s.ticks.Stop()
			s.running = false
		}
		return
	}
	p := periodFor(st)
	if p != s.period || !s.running {
		s.ticks.SetPeriod(p)
		s.period = p
	}
	if !s.running {
		s.ticks.Start()
		s.running = true
	}
}

func (s *Supervisor) setLED(id types.LED, on bool) {
	if s.leds[id] == on {
		return
	}
	s.leds[id] = on
	s.board.SetLED(id, on)
}

func (s *Supervisor) showBuzzer() {
	switch s.state {
	case types.StateNoSupply, types.StateRunSetupVolume:
		return
	}
	s.setLED(types.LEDBuzzer, s.seq.Sounding() && s.seq.Current() != types.ToneSilence)
}

// showVolume lights a bar of LEDs: none for silent, all three for high.
func (s *Supervisor) showVolume() {
	for i := types.LED(0); i < types.LEDCount; i++ {
		s.setLED(i, uint8(i) < uint8(s.vol))
	}
}

// WaitDepth picks the low-power wait for the next tick. A deep wait would
// clip the start of a tone, so it is only used when the buzzer is idle.
func (s *Supervisor) WaitDepth() types.WaitDepth {
	if s.seq.IsActive() {
		return types.WaitLight
	}
	return types.WaitDeep
}

func (s *Supervisor) State() types.State           { return s.state }
func (s *Supervisor) Timers() Timers               { return s.t }
func (s *Supervisor) Volume() types.Volume         { return s.vol }
func (s *Supervisor) Period() types.WakePeriod     { return s.period }
func (s *Supervisor) TickRunning() bool            { return s.running }
func (s *Supervisor) Sequencer() *buzzer.Sequencer { return s.seq }
func (s *Supervisor) Steps() uint32                { return s.steps }
