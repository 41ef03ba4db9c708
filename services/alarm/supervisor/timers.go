package supervisor

import (
	"buzzalarm-go/services/alarm/config"
	"buzzalarm-go/types"
)

// Timers are the per-state counters. All are zeroed on every transition and
// saturate instead of wrapping.
type Timers struct {
	Tick     uint32 // fast ticks since the last slow pass (Run only)
	StateAge uint32 // ticks since entry
	Delay    uint32 // state-specific spacing counter
	Event    uint32 // state-specific event counter
}

// limits are Timing converted to tick counts once, at construction.
type limits struct {
	slowDiv uint32

	settle     uint32
	inactivity uint32

	preTimeout uint32
	ping       uint32

	alarmRepeat    uint32
	alarmThrottled uint32
	throttleAfter  uint32

	controlTimeout uint32
	burstRepeat    uint32

	pingMs, clickMs, confirmMs uint16
}

func newLimits(tm config.Timing) limits {
	slow := types.WakeSlow
	fast := types.WakeFast
	return limits{
		slowDiv: uint32(tm.SlowPass / fast.Duration()),

		settle:     config.Ticks(tm.WakeupSettle, slow),
		inactivity: config.Ticks(tm.SetupInactivity, slow),

		preTimeout: config.Ticks(tm.PreAlarmTimeout, slow),
		ping:       config.Ticks(tm.PreAlarmPing, slow),

		alarmRepeat:    config.Ticks(tm.AlarmRepeat, slow),
		alarmThrottled: config.Ticks(tm.AlarmRepeatThrottled, slow),
		throttleAfter:  config.Ticks(tm.AlarmThrottleAfter, slow),

		controlTimeout: config.Ticks(tm.ControlTimeout, fast),
		burstRepeat:    config.Ticks(tm.ControlBurstRepeat, fast),

		pingMs:    config.Ms(tm.PingLength),
		clickMs:   config.Ms(tm.ClickLength),
		confirmMs: config.Ms(tm.ConfirmLength),
	}
}
