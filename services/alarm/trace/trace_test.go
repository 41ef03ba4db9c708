package trace

import (
	"bytes"
	"errors"
	"testing"

	"buzzalarm-go/types"
)

func TestWriterLine(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)
	w.Transition(42, types.StateWakeup, types.StateRun)
	w.Transition(123456789, types.StatePreAlarm, types.StateAlarm)
	want := "tick=00000042 wakeup -> run\ntick=123456789 prealarm -> alarm\n"
	if got := out.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

type failing struct{ calls int }

func (f *failing) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("uart busy")
}

func TestWriterIgnoresErrors(t *testing.T) {
	f := &failing{}
	w := New(f)
	w.Transition(1, types.StateRun, types.StatePreAlarm)
	w.Transition(2, types.StatePreAlarm, types.StateSleep)
	if f.calls != 2 {
		t.Fatalf("calls=%d", f.calls)
	}
}
