package zaptrace

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"buzzalarm-go/types"
)

func TestObserverFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := NewObserver(zap.New(core))
	o.Transition(7, types.StateWakeup, types.StateRun)
	o.Transition(9, types.StateRun, types.StatePreAlarm)

	all := logs.All()
	if len(all) != 2 {
		t.Fatalf("got %d entries", len(all))
	}
	first := all[0]
	if first.Level != zapcore.InfoLevel || first.LoggerName != "supervisor" || first.Message != "transition" {
		t.Fatalf("unexpected entry %+v", first.Entry)
	}
	ctx := first.ContextMap()
	if ctx["from"] != "wakeup" || ctx["to"] != "run" || ctx["tick"] != uint32(7) {
		t.Fatalf("fields %v", ctx)
	}
	if all[1].Level != zapcore.WarnLevel {
		t.Fatalf("prealarm logged at %v", all[1].Level)
	}
}

type rec struct{ drives, stops int }

func (r *rec) Drive(types.Tone, types.Volume) { r.drives++ }
func (r *rec) Stop()                          { r.stops++ }

func TestDriverForwards(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := &rec{}
	d := NewDriver(r, zap.New(core))
	d.Drive(types.Tone2, types.VolumeMedium)
	d.Stop()
	if r.drives != 1 || r.stops != 1 {
		t.Fatalf("forwarded %+v", *r)
	}
	got := logs.FilterMessage("drive").All()
	if len(got) != 1 || got[0].ContextMap()["tone"] != types.Tone2.String() {
		t.Fatalf("drive entries %v", got)
	}
}

func TestNewConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(zapcore.WarnLevel, &buf)
	l.Info("hidden")
	l.Warn("shown", zap.String("k", "v"))
	_ = l.Sync()
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Fatalf("output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel(" Debug "); !ok || l != zapcore.DebugLevel {
		t.Fatalf("got %v %v", l, ok)
	}
	if l, ok := ParseLevel("loud"); ok || l != zapcore.InfoLevel {
		t.Fatalf("got %v %v", l, ok)
	}
}
