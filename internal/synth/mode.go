package synth

import "fmt"

// Mode tells the planner how to treat the current plan
type Mode string

const (
	ModeInitial    Mode = "initial"
	ModeModify     Mode = "modify"
	ModeRegenerate Mode = "regenerate"
)

// Valid reports whether m is one of the three modes
func (m Mode) Valid() bool {
	switch m {
	case ModeInitial, ModeModify, ModeRegenerate:
		return true
	default:
		return false
	}
}

// ParseMode converts s into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q (want initial, modify or regenerate)", s)
	}
	return m, nil
}
