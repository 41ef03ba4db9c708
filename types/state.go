package types

// State is the supervisor's logical state. Exactly one is active at a time.
type State uint8

const (
	StateWakeup State = iota
	// StateNoSupply is volume selection at boot.
	StateNoSupply
	StateNoSupplyExit
	StateRun
	StateRunSetupVolume
	StateRunSetupVolumeExit
	StatePreAlarm
	StateAlarm
	StateSleep
	StateCount
)

var stateNames = [...]string{
	"wakeup",
	"no_supply",
	"no_supply_exit",
	"run",
	"run_setup_volume",
	"run_setup_volume_exit",
	"prealarm",
	"alarm",
	"sleep",
}

func (s State) String() string {
	if s < StateCount {
		return stateNames[s]
	}
	return "state?"
}

// Supplied reports whether s is only valid while main supply is present.
func (s State) Supplied() bool {
	switch s {
	case StateRun, StateRunSetupVolume, StateRunSetupVolumeExit:
		return true
	}
	return false
}
