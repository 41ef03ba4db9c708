package supervisor

import (
	"buzzalarm-go/services/alarm/buzzer"
	"buzzalarm-go/types"
)

// Fixed tone patterns. Durations in ms.
var (
	greeting = [...]buzzer.Request{
		{Tone: types.Tone1, DurationMs: 60},
		{Tone: types.Tone2, DurationMs: 60},
		{Tone: types.Tone3, DurationMs: 90},
	}

	// Sustained power loss: long-short-long, easy to tell from the ping.
	alarmPattern = [...]buzzer.Request{
		{Tone: types.Tone4, DurationMs: 300},
		{Tone: types.Tone1, DurationMs: 150},
		{Tone: types.Tone4, DurationMs: 300},
		{Tone: types.ToneSilence, DurationMs: 100},
		{Tone: types.Tone4, DurationMs: 300},
	}

	// Control signal timeout: three short chirps.
	controlBurst = [...]buzzer.Request{
		{Tone: types.Tone3, DurationMs: 100},
		{Tone: types.ToneSilence, DurationMs: 100},
		{Tone: types.Tone3, DurationMs: 100},
		{Tone: types.ToneSilence, DurationMs: 100},
		{Tone: types.Tone3, DurationMs: 100},
	}
)

const (
	pingTone    = types.Tone4
	clickTone   = types.Tone2
	confirmTone = types.Tone3
	directTone  = types.Tone2
)

func (s *Supervisor) play(p []buzzer.Request) {
	for _, r := range p {
		s.seq.PutTone(r.Tone, r.DurationMs)
	}
}
