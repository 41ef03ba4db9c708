package types

import "time"

// ---- Buzzer ----

// Tone selects one of the fixed buzzer frequencies. The mapping to a physical
// frequency belongs to the tone driver.
type Tone uint8

const (
	ToneSilence Tone = iota
	Tone1
	Tone2
	Tone3
	Tone4
	ToneCount
)

var toneNames = [...]string{"silence", "tone1", "tone2", "tone3", "tone4"}

func (t Tone) String() string {
	if t < ToneCount {
		return toneNames[t]
	}
	return "tone?"
}

// Volume is an ordinal in [0, VolumeCount).
type Volume uint8

const (
	VolumeSilent Volume = iota // no sound at all
	VolumeLow
	VolumeMedium
	VolumeHigh
	VolumeCount
)

// Next returns the following level, wrapping to VolumeSilent after the last.
func (v Volume) Next() Volume {
	n := v + 1
	if n >= VolumeCount {
		return 0
	}
	return n
}

var volumeNames = [...]string{"silent", "low", "medium", "high"}

func (v Volume) String() string {
	if v < VolumeCount {
		return volumeNames[v]
	}
	return "volume?"
}

// ---- LEDs ----

type LED uint8

const (
	LED1 LED = iota
	LED2
	LED3
	LEDCount
)

// LEDBuzzer mirrors buzzer output outside of volume setup.
const LEDBuzzer = LED1

// ---- Wake timer / CPU ----

// WakePeriod is one of the periods the tick source can run at.
type WakePeriod uint8

const (
	WakeFast WakePeriod = iota // 1 ms, Run
	WakeSlow                   // 10 ms, everything else
)

func (p WakePeriod) Duration() time.Duration {
	if p == WakeFast {
		return time.Millisecond
	}
	return 10 * time.Millisecond
}

func (p WakePeriod) String() string {
	if p == WakeFast {
		return "1ms"
	}
	return "10ms"
}

// WaitDepth is the low-power wait used while waiting for the next tick.
type WaitDepth uint8

const (
	// WaitLight keeps peripheral clocks running; any enabled interrupt wakes.
	WaitLight WaitDepth = iota
	// WaitDeep stops oscillators; only the wake timer and edge interrupts wake.
	WaitDeep
)

func (d WaitDepth) String() string {
	if d == WaitLight {
		return "light"
	}
	return "deep"
}
