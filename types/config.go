package types

// Settings is the small user settings record. How it is loaded or stored is up
// to the caller; the firmware only ever uses DefaultSettings.
type Settings struct {
	// ControlActiveHigh selects the direct-control polarity: the input is
	// "active" when its level equals this value.
	ControlActiveHigh bool
	// Greeting plays a short tune when Run is entered from Wakeup.
	Greeting bool
	// InitialVolume is the level used until the user picks another one.
	InitialVolume Volume
}

func DefaultSettings() Settings {
	return Settings{
		ControlActiveHigh: true,
		Greeting:          true,
		InitialVolume:     VolumeHigh,
	}
}
