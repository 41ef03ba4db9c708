package supervisor

import "buzzalarm-go/types"

// setupVolume serves NoSupply and RunSetupVolume: every press steps the
// volume (wrapping) and restarts the inactivity timeout.
func (s *Supervisor) setupVolume() bool {
	if s.state == types.StateRunSetupVolume && !s.in.supply {
		s.switchTo(types.StatePreAlarm)
		return false
	}
	if s.pressed() {
		s.vol = s.vol.Next()
		s.seq.SetVolume(s.vol)
		s.seq.Stop()
		s.seq.PutTone(clickTone, s.lim.clickMs)
		s.showVolume()
		s.t.StateAge = 0
		return false
	}
	if s.t.StateAge > s.lim.inactivity {
		if s.state == types.StateNoSupply {
			s.switchTo(types.StateNoSupplyExit)
		} else {
			s.switchTo(types.StateRunSetupVolumeExit)
		}
	}
	return false
}

// setupExit plays the confirmation tone queued on entry, then moves on.
func (s *Supervisor) setupExit() bool {
	if s.state == types.StateRunSetupVolumeExit && !s.in.supply {
		s.switchTo(types.StatePreAlarm)
		return false
	}
	if s.seq.IsActive() {
		return false
	}
	if s.state == types.StateNoSupplyExit {
		s.switchTo(types.StateSleep)
		return true
	}
	s.switchTo(types.StateRun)
	return false
}
