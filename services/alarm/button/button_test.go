package button

import (
	"math/rand"
	"testing"

	"buzzalarm-go/errcode"
)

func allActions() Config {
	return Config{
		Actions:        ActionUp | ActionHold | ActionRep | ActionUpShort | ActionUpLong | ActionToggle,
		LongPressDelay: 10,
		RepeatDelay:    6,
		RepeatPeriod:   3,
	}
}

func TestDownUpPulses(t *testing.T) {
	p := New(DefaultConfig())
	seq := []Mask{0, Main, Main, Main, 0, 0, Main, 0}
	wantDown := []bool{false, true, false, false, false, false, true, false}
	wantUp := []bool{false, false, false, false, true, false, false, true}
	for i, raw := range seq {
		p.Process(raw)
		st := p.State()
		if (st.Down&Main != 0) != wantDown[i] {
			t.Fatalf("tick %d: down=%v want %v", i, st.Down&Main != 0, wantDown[i])
		}
		if (st.Up&Main != 0) != wantUp[i] {
			t.Fatalf("tick %d: up=%v want %v", i, st.Up&Main != 0, wantUp[i])
		}
		if st.Raw != raw {
			t.Fatalf("tick %d: raw=%02x want %02x", i, st.Raw, raw)
		}
	}
}

func TestHoldFiresOnceAfterDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongPressDelay = 10
	p := New(cfg)
	fired := -1
	for i := 0; i < 50; i++ {
		p.Process(Main)
		if p.State().Hold&Main != 0 {
			if fired >= 0 {
				t.Fatalf("hold fired twice (tick %d and %d)", fired, i)
			}
			fired = i
		}
	}
	// The down tick counts as the first pressed call.
	if fired != 9 {
		t.Fatalf("hold fired at tick %d, want 9", fired)
	}
}

func TestHoldNeverFiresOnShortPress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongPressDelay = 10
	p := New(cfg)
	for press := 0; press < 5; press++ {
		for i := 0; i < 9; i++ {
			p.Process(Main)
			if p.State().Hold != 0 {
				t.Fatalf("press %d: hold after %d ticks", press, i+1)
			}
		}
		p.Process(0)
	}
}

func TestHoldWithDelayOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongPressDelay = 1
	p := New(cfg)
	p.Process(Main)
	if p.State().Hold&Main == 0 {
		t.Fatal("delay 1 must fire on the down tick")
	}
	p.Process(Main)
	if p.State().Hold != 0 {
		t.Fatal("hold re-fired")
	}
}

func TestRepeatPulses(t *testing.T) {
	p := New(allActions())
	var ticks []int
	for i := 0; i < 16; i++ {
		p.Process(Main)
		if p.State().Rep&Main != 0 {
			ticks = append(ticks, i)
		}
	}
	// Press at 0, first repeat when held reaches 6 (tick 5), then every 3 calls.
	want := []int{0, 5, 8, 11, 14}
	if len(ticks) != len(want) {
		t.Fatalf("repeat ticks %v want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("repeat ticks %v want %v", ticks, want)
		}
	}
}

func TestUpShortAndLong(t *testing.T) {
	p := New(allActions())
	for i := 0; i < 3; i++ {
		p.Process(Main)
	}
	p.Process(0)
	st := p.State()
	if st.UpShort&Main == 0 || st.UpLong != 0 {
		t.Fatalf("short release: %+v", st)
	}
	for i := 0; i < 12; i++ {
		p.Process(Main)
	}
	p.Process(0)
	st = p.State()
	if st.UpLong&Main == 0 || st.UpShort != 0 {
		t.Fatalf("long release: %+v", st)
	}
}

func TestToggleAndInvert(t *testing.T) {
	cfg := allActions()
	cfg.InvertMask = Main
	p := New(cfg)
	// Inverted: level 0 means pressed.
	p.Process(0)
	if p.State().Down&Main == 0 || p.State().Toggle&Main == 0 {
		t.Fatalf("inverted press not seen: %+v", p.State())
	}
	p.Process(Main)
	p.Process(0)
	if p.State().Toggle&Main != 0 {
		t.Fatal("toggle should be cleared after second press")
	}
}

func TestDisabledActionsStayZero(t *testing.T) {
	p := New(Config{})
	for i := 0; i < 30; i++ {
		p.Process(Main)
	}
	p.Process(0)
	st := p.State()
	if st.Up|st.Hold|st.Rep|st.UpShort|st.UpLong|st.Toggle != 0 {
		t.Fatalf("disabled actions fired: %+v", st)
	}
}

func TestClearKeepsHeldButtonQuiet(t *testing.T) {
	p := New(DefaultConfig())
	p.Process(Main)
	p.Clear()
	if st := p.State(); st.Down != 0 || st.Raw != Main {
		t.Fatalf("clear: %+v", st)
	}
	p.Process(Main)
	if p.State().Down != 0 {
		t.Fatal("held button produced a second down after Clear")
	}
	p.Reset()
	p.Process(Main)
	if p.State().Down == 0 {
		t.Fatal("Reset should forget the previous sample")
	}
}

func TestRandomSequencesPairDownsAndUps(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	cfg := allActions()
	p := New(cfg)
	var down, hold [maxButtons]int
	var pressed [maxButtons]bool
	for i := 0; i < 5000; i++ {
		raw := Mask(r.Intn(256))
		// Mostly hold the previous value so long presses happen.
		if r.Intn(4) != 0 {
			raw = p.State().Raw
		}
		p.Process(raw)
		st := p.State()
		for b := 0; b < maxButtons; b++ {
			bit := Mask(1) << b
			if st.Down&bit != 0 {
				if pressed[b] {
					t.Fatalf("tick %d button %d: down twice without up", i, b)
				}
				pressed[b] = true
				down[b]++
				hold[b] = 0
			}
			if st.Hold&bit != 0 {
				hold[b]++
				if hold[b] > 1 {
					t.Fatalf("tick %d button %d: hold fired twice in one press", i, b)
				}
			}
			if st.Up&bit != 0 {
				if !pressed[b] {
					t.Fatalf("tick %d button %d: up without down", i, b)
				}
				pressed[b] = false
			}
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default rejected: %v", err)
	}
	bad := Config{Actions: ActionHold}
	if errcode.Of(bad.Validate()) != errcode.OutOfRange {
		t.Fatal("zero long press delay accepted")
	}
	bad = Config{Actions: ActionRep, RepeatDelay: 3}
	if errcode.Of(bad.Validate()) != errcode.OutOfRange {
		t.Fatal("zero repeat period accepted")
	}
}
