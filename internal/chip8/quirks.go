package chip8

// Quirks selects among documented behavioral variations of the CHIP-8
// instruction set. They are fixed at VM construction (start-of-session,
// which subsumes "start-of-frame" — nothing mutates them mid-run) and do
// not change mid-frame.
type Quirks struct {
	// ShiftUsesVY: 8XY6/8XYE shift VY instead of VX. Default false.
	ShiftUsesVY bool
	// LoadStoreAdvancesI: FX55/FX65 set I = I+X+1 afterward. Default true.
	LoadStoreAdvancesI bool
}

// DefaultQuirks returns the standard CHIP-8 defaults.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:        false,
		LoadStoreAdvancesI: true,
	}
}
