// services/alarm/supervisor/run.go

package supervisor

import (
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/services/alarm/buzzer"
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

// run is the supplied, armed state. Supply loss is checked before anything
// else so no Run-only logic executes on a tick without supply.
func (s *Supervisor) run() bool {
	if !s.in.supply {
		s.switchTo(types.StatePreAlarm)
		return false
	}
	if s.buttons.State().Hold&button.Main != 0 {
		s.switchTo(types.StateRunSetupVolume)
		return false
	}

	active := s.in.control == s.settings.ControlActiveHigh
	c := &s.ctl
	if !c.known || active != c.active {
		c.known = true
		c.active = active
		c.idle = 0
		if c.firing {
			c.firing = false
			s.t.Delay = 0
		}
	} else {
		mathx.SatInc(&c.idle)
	}
	if c.idle >= s.lim.controlTimeout {
		c.firing = true
	}

	// 1. Control-signal timeout owns the buzzer while it fires.
	if c.firing {
		if s.t.Delay == 0 {
			if s.seq.Status() == buzzer.Continuous {
				s.seq.Stop()
			}
			s.play(controlBurst[:])
			mathx.SatInc(&s.t.Event)
		}
		mathx.SatInc(&s.t.Delay)
		if s.t.Delay >= s.lim.burstRepeat {
			s.t.Delay = 0
		}
		return false
	}

	// 2. Direct control follows the input level.
	cont := s.seq.Status() == buzzer.Continuous
	switch {
	case active && !cont:
		s.seq.BeepContinuous(directTone)
	case !active && cont:
		s.seq.Stop()
	}
	return false
}

// ControlFiring reports whether the control-signal timeout alarm is active.
func (s *Supervisor) ControlFiring() bool { return s.ctl.firing }
