package capability

// Level summarizes how many optional capabilities were acquired.
type Level int

const (
	// LevelBasic has no optional capability. Every consumer runs degraded.
	LevelBasic Level = iota

	// LevelPartial has some optional capabilities.
	LevelPartial

	// LevelFull has every registered optional capability.
	LevelFull
)

func (l Level) String() string {
	switch l {
	case LevelBasic:
		return "basic"
	case LevelPartial:
		return "partial"
	case LevelFull:
		return "full"
	default:
		return "unknown"
	}
}

// levelOf derives the level from resolved statuses.
func levelOf(statuses []Status) Level {
	if len(statuses) == 0 {
		return LevelBasic
	}
	n := 0
	for _, s := range statuses {
		if s.Available {
			n++
		}
	}
	switch n {
	case 0:
		return LevelBasic
	case len(statuses):
		return LevelFull
	default:
		return LevelPartial
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
