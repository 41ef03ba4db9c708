package config

import (
	"testing"
	"time"

	"buzzalarm-go/errcode"
	"buzzalarm-go/types"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default timing rejected: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		mut  func(*Timing)
		want errcode.Code
	}{
		"slow pass":      {func(tm *Timing) { tm.SlowPass = 7 * time.Millisecond }, errcode.InvalidParams},
		"slow multiple":  {func(tm *Timing) { tm.SlowPass = 20 * time.Millisecond }, errcode.InvalidParams},
		"zero settle":    {func(tm *Timing) { tm.WakeupSettle = 0 }, errcode.OutOfRange},
		"negative ping":  {func(tm *Timing) { tm.PreAlarmPing = -time.Second }, errcode.OutOfRange},
		"throttle order": {func(tm *Timing) { tm.AlarmRepeatThrottled = time.Second }, errcode.OutOfRange},
		"long confirm":   {func(tm *Timing) { tm.ConfirmLength = 2 * time.Minute }, errcode.OutOfRange},
	}
	for name, tc := range cases {
		tm := Default()
		tc.mut(&tm)
		err := tm.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if got := errcode.Of(err); got != tc.want {
			t.Fatalf("%s: code %q want %q (%v)", name, got, tc.want, err)
		}
	}
}

func TestTicks(t *testing.T) {
	cases := []struct {
		d    time.Duration
		p    types.WakePeriod
		want uint32
	}{
		{10 * time.Second, types.WakeSlow, 1000},
		{50 * time.Millisecond, types.WakeSlow, 5},
		{5 * time.Second, types.WakeFast, 5000},
		{10 * time.Minute, types.WakeFast, 600000},
		{15 * time.Millisecond, types.WakeSlow, 2},
		{0, types.WakeSlow, 1},
		{-time.Second, types.WakeSlow, 1},
		{time.Duration(1<<62), types.WakeFast, 0xFFFFFFFF},
	}
	for _, tc := range cases {
		if got := Ticks(tc.d, tc.p); got != tc.want {
			t.Fatalf("Ticks(%v,%v)=%d want %d", tc.d, tc.p, got, tc.want)
		}
	}
}

func TestMs(t *testing.T) {
	if Ms(200*time.Millisecond) != 200 {
		t.Fatal("200ms")
	}
	if Ms(time.Hour) != 0xFFFF {
		t.Fatal("clamp high")
	}
	if Ms(-time.Second) != 0 {
		t.Fatal("clamp low")
	}
}
