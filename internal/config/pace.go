package config

import "fmt"

// Pace is a named preset for how busy the world feels.
type Pace string

const (
	PaceCalm   Pace = "calm"
	PaceNormal Pace = "normal"
	PaceBusy   Pace = "busy"
)

// Paces lists the presets in menu order.
var Paces = []Pace{PaceCalm, PaceNormal, PaceBusy}

// ParsePace validates a preset name. The empty string means normal.
func ParsePace(s string) (Pace, error) {
	if s == "" {
		return PaceNormal, nil
	}
	for _, p := range Paces {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown pace %q (want calm, normal or busy)", s)
}

// ApplyPace adjusts wander timing and population for a preset.
// Normal leaves the loaded values untouched.
func ApplyPace(cfg *WorldConfig, pace Pace) {
	switch pace {
	case PaceCalm:
		cfg.Wander.MinWait *= 2
		cfg.Wander.MaxWait *= 2
		cfg.Actors.Initial /= 2
		cfg.Actors.StepTicks += cfg.Actors.StepTicks / 2
	case PaceBusy:
		cfg.Wander.MinWait = max(1, cfg.Wander.MinWait/4)
		cfg.Wander.MaxWait = max(cfg.Wander.MinWait, cfg.Wander.MaxWait/4)
		cfg.Actors.Initial *= 2
	}
	cfg.Validate()
}
