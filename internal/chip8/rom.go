package chip8

// MaxROMSize is the largest ROM image the address space can hold:
// 4096 - 0x200.
const MaxROMSize = ramSize - EntryPoint

// LoadROM validates and copies an opaque ROM byte slice into RAM starting
// at EntryPoint (0x200). It does not reset other state; callers that want
// a clean load call State.Reset first.
func LoadROM(s *State, rom []byte) error {
	if len(rom) > MaxROMSize {
		return newFault(RomTooLarge, 0, 0, "rom exceeds 3584 bytes")
	}
	for i, b := range rom {
		if err := s.WriteByte(EntryPoint+uint16(i), b); err != nil {
			return err
		}
	}
	return nil
}
