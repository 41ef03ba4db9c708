// Package config holds the timing constants of the alarm engine and converts
// them into tick counts for the supervisor.
package config

import (
	"time"

	"buzzalarm-go/errcode"
	"buzzalarm-go/types"
	"buzzalarm-go/x/mathx"
)

// Timing is every duration the supervisor and its helpers depend on.
type Timing struct {
	// Button and sequencer run once per slow pass.
	SlowPass time.Duration

	WakeupSettle    time.Duration // consecutive supply-present time before Run
	SetupInactivity time.Duration // no press for this long confirms the volume

	PreAlarmTimeout time.Duration
	PreAlarmPing    time.Duration // ping repeat period
	PingLength      time.Duration

	AlarmRepeat          time.Duration
	AlarmRepeatThrottled time.Duration
	AlarmThrottleAfter   time.Duration

	ControlTimeout     time.Duration // no change on the control input for this long fires the alarm
	ControlBurstRepeat time.Duration

	ClickLength   time.Duration // volume setup feedback
	ConfirmLength time.Duration // volume setup confirmation
}

// Default returns the authoritative constants.
func Default() Timing {
	return Timing{
		SlowPass: 10 * time.Millisecond,

		WakeupSettle:    50 * time.Millisecond,
		SetupInactivity: time.Second,

		PreAlarmTimeout: 10 * time.Second,
		PreAlarmPing:    time.Second,
		PingLength:      20 * time.Millisecond,

		AlarmRepeat:          4 * time.Second,
		AlarmRepeatThrottled: 15 * time.Second,
		AlarmThrottleAfter:   30 * time.Minute,

		ControlTimeout:     10 * time.Minute,
		ControlBurstRepeat: 5 * time.Second,

		ClickLength:   30 * time.Millisecond,
		ConfirmLength: 200 * time.Millisecond,
	}
}

// Validate rejects records the engine cannot run with.
func (t Timing) Validate() error {
	const op = "timing"
	if t.SlowPass != types.WakeSlow.Duration() {
		return errcode.New(errcode.InvalidParams, op, "slow pass must equal the slow wake period")
	}
	checks := []struct {
		name string
		d    time.Duration
	}{
		{"wakeup_settle", t.WakeupSettle},
		{"setup_inactivity", t.SetupInactivity},
		{"prealarm_timeout", t.PreAlarmTimeout},
		{"prealarm_ping", t.PreAlarmPing},
		{"ping_length", t.PingLength},
		{"alarm_repeat", t.AlarmRepeat},
		{"alarm_repeat_throttled", t.AlarmRepeatThrottled},
		{"alarm_throttle_after", t.AlarmThrottleAfter},
		{"control_timeout", t.ControlTimeout},
		{"control_burst_repeat", t.ControlBurstRepeat},
		{"click_length", t.ClickLength},
		{"confirm_length", t.ConfirmLength},
	}
	for _, c := range checks {
		if c.d <= 0 {
			return errcode.New(errcode.OutOfRange, op, c.name+" must be positive")
		}
	}
	if t.AlarmRepeatThrottled < t.AlarmRepeat {
		return errcode.New(errcode.OutOfRange, op, "throttled repeat must not be shorter than repeat")
	}
	if ms(t.PingLength) > 0xFFFF || ms(t.ConfirmLength) > 0xFFFF || ms(t.ClickLength) > 0xFFFF {
		return errcode.New(errcode.OutOfRange, op, "tone lengths must fit 16-bit milliseconds")
	}
	return nil
}

// Ticks converts d into a number of periods of p, rounding up, never below 1.
func Ticks(d time.Duration, p types.WakePeriod) uint32 {
	if d <= 0 {
		return 1
	}
	n := mathx.CeilDiv(uint64(d), uint64(p.Duration()))
	return uint32(mathx.Clamp(n, 1, 0xFFFFFFFF))
}

// Ms returns d in whole milliseconds, clamped to uint16 for tone requests.
func Ms(d time.Duration) uint16 {
	return uint16(mathx.Clamp(ms(d), 0, 0xFFFF))
}

func ms(d time.Duration) int64 { return int64(d / time.Millisecond) }
