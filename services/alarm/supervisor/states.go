package supervisor

import (
	"buzzalarm-go/services/alarm/button"
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

func (s *Supervisor) pressed() bool { return s.buttons.State().Down&button.Main != 0 }

// wakeup waits for the settle delay and then decides where the device is:
// button held => volume selection, stable supply => Run, otherwise Sleep.
func (s *Supervisor) wakeup() bool {
	if s.in.supply {
		mathx.SatInc(&s.t.Delay)
	} else {
		s.t.Delay = 0
	}
	if s.t.StateAge < s.lim.settle {
		return false
	}
	switch {
	case s.buttons.State().Raw&button.Main != 0:
		s.switchTo(types.StateNoSupply)
		return false
	case s.t.Delay >= s.lim.settle:
		s.switchTo(types.StateRun)
		return false
	default:
		s.switchTo(types.StateSleep)
		return true
	}
}

// preAlarm: supply just went away. Ping once a second; escalate to Alarm
// when the loss lasts long enough.
func (s *Supervisor) preAlarm() bool {
	if s.in.supply {
		s.switchTo(types.StateWakeup)
		return false
	}
	if s.pressed() {
		s.switchTo(types.StateSleep)
		return true
	}
	if s.t.StateAge >= s.lim.preTimeout {
		s.switchTo(types.StateAlarm)
		return true
	}
	if s.t.Delay == 0 {
		s.seq.PutTone(pingTone, s.lim.pingMs)
	}
	mathx.SatInc(&s.t.Delay)
	if s.t.Delay >= s.lim.ping {
		s.t.Delay = 0
	}
	return false
}

// alarm repeats the alarm pattern until supply returns or the button is
// pressed. After throttleAfter the repeat period is lengthened for good.
func (s *Supervisor) alarm() bool {
	if s.in.supply {
		s.switchTo(types.StateWakeup)
		return false
	}
	if s.pressed() {
		s.switchTo(types.StateSleep)
		return true
	}
	period := s.lim.alarmRepeat
	if s.t.StateAge >= s.lim.throttleAfter {
		period = s.lim.alarmThrottled
	}
	if s.t.Delay == 0 {
		s.play(alarmPattern[:])
		mathx.SatInc(&s.t.Event)
	}
	mathx.SatInc(&s.t.Delay)
	if s.t.Delay >= period {
		s.t.Delay = 0
	}
	return false
}

// sleep: the wake timer is stopped on entry. The entry pass only checks that
// a wake edge can still arrive; any later pass means an edge woke us.
func (s *Supervisor) sleep() bool {
	if s.t.StateAge == 0 && !s.in.supply {
		return false
	}
	s.switchTo(types.StateWakeup)
	return false
}
