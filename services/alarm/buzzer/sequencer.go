// Package buzzer sequences tone requests onto the tone driver.
//
// Queued requests are time-sliced by Process, which the caller invokes once per
// PeriodMs. A continuous tone bypasses the queue and holds until Stop.
// Dropped requests (queue full, continuous mode) are silent; the device has
// nowhere to report them.
package buzzer

import (
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

// PeriodMs is the fixed interval between Process calls.
const PeriodMs = 10

// Driver produces the physical tone. It must silence combinations it cannot
// play (ToneSilence, VolumeSilent, ...).
type Driver interface {
	Drive(tone types.Tone, vol types.Volume)
	Stop()
}

type Status uint8

const (
	Idle Status = iota
	StartQueuedTone
	PlayingQueuedTone
	Continuous
)

var statusNames = [...]string{"idle", "start_queued", "playing_queued", "continuous"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "status?"
}

type Sequencer struct {
	drv   Driver
	state Status
	q     queue
	vol   types.Volume

	elapsedMs  uint16
	durationMs uint16
	current    types.Tone
}

// New returns an idle sequencer bound to drv.
func New(drv Driver, vol types.Volume) *Sequencer {
	s := &Sequencer{drv: drv}
	s.Init(vol)
	return s
}

// Init resets to Idle with an empty queue. The driver is not touched.
func (s *Sequencer) Init(vol types.Volume) {
	s.state = Idle
	s.q.clear()
	s.vol = vol
	s.elapsedMs, s.durationMs = 0, 0
	s.current = types.ToneSilence
}

// SetVolume takes effect when the next tone starts; a sounding tone keeps the
// level it was started with.
func (s *Sequencer) SetVolume(v types.Volume) { s.vol = v }

func (s *Sequencer) Volume() types.Volume { return s.vol }

// PutTone appends a request. No-op when the queue is full or a continuous
// tone is sounding.
func (s *Sequencer) PutTone(t types.Tone, durationMs uint16) {
	if s.state == Continuous {
		return
	}
	s.q.push(Request{Tone: t, DurationMs: durationMs})
}

// BeepContinuous drives t immediately, drops everything queued and holds the
// tone until Stop or another BeepContinuous.
func (s *Sequencer) BeepContinuous(t types.Tone) {
	s.q.clear()
	s.current = t
	s.drv.Drive(t, s.vol)
	s.state = Continuous
}

// Stop silences the output and empties the queue.
func (s *Sequencer) Stop() {
	s.drv.Stop()
	s.q.clear()
	s.state = Idle
	s.current = types.ToneSilence
}

// IsActive reports pending or sounding output.
func (s *Sequencer) IsActive() bool { return s.state != Idle || !s.q.empty() }

// Sounding reports whether the driver is currently producing a tone.
func (s *Sequencer) Sounding() bool {
	return s.state == PlayingQueuedTone || s.state == Continuous
}

func (s *Sequencer) Status() Status { return s.state }

// Current is the tone being driven, ToneSilence when idle.
func (s *Sequencer) Current() types.Tone { return s.current }

func (s *Sequencer) Pending() int { return s.q.len() }

// Process advances queued playback by one period.
func (s *Sequencer) Process() {
	for {
		switch s.state {
		case Idle:
			if s.q.empty() {
				return
			}
			s.state = StartQueuedTone
		case StartQueuedTone:
			r, _ := s.q.pop()
			s.start(r)
			// The start itself does not consume the period: fall through to
			// counting it against the new tone.
		case PlayingQueuedTone:
			s.elapsedMs = mathx.SatAdd[uint16](s.elapsedMs, PeriodMs)
			if s.elapsedMs < s.durationMs {
				return
			}
			if r, ok := s.q.pop(); ok {
				s.start(r)
				return
			}
			s.drv.Stop()
			s.state = Idle
			s.current = types.ToneSilence
			return
		default:
			return
		}
	}
}

func (s *Sequencer) start(r Request) {
	s.current = r.Tone
	s.drv.Drive(r.Tone, s.vol)
	s.elapsedMs = 0
	s.durationMs = r.DurationMs
	s.state = PlayingQueuedTone
}
