package chip8

const (
	ramSize      = 4096
	numRegisters = 16
	stackDepth   = 16
	// EntryPoint is the PC value a freshly reset VM starts executing at.
	EntryPoint = 0x200
)

// State is the architectural state of a CHIP-8 machine: RAM, registers, the
// call stack, the timers, the framebuffer, and the keypad. State holds no
// policy — every accessor is a total function that either succeeds or
// reports an indexing fault; all opcode semantics live in the executor.
type State struct {
	ram [ramSize]byte
	v   [numRegisters]byte
	i   uint16
	pc  uint16

	stack [stackDepth]uint16
	sp    uint8

	dt, st byte

	fb  Framebuffer
	key Keypad
}

// NewState returns a State in its reset condition: RAM zeroed except the
// font table at 0x000, all registers/stack/timers/framebuffer/keypad zero,
// and PC at EntryPoint.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the full initial condition, preserving (re-seeding) the
// font table.
func (s *State) Reset() {
	s.ram = [ramSize]byte{}
	copy(s.ram[fontBaseAddr:], fontSet[:])
	s.v = [numRegisters]byte{}
	s.i = 0
	s.pc = EntryPoint
	s.stack = [stackDepth]uint16{}
	s.sp = 0
	s.dt = 0
	s.st = 0
	s.fb.Clear()
	s.key = Keypad{}
}

// RAM access. Bounds are [0, 4096); anything else is an IndexFault.

func (s *State) ReadByte(addr uint16) (byte, error) {
	if int(addr) >= ramSize {
		return 0, newFault(IndexFault, s.pc, 0, "ram read out of range")
	}
	return s.ram[addr], nil
}

func (s *State) WriteByte(addr uint16, v byte) error {
	if int(addr) >= ramSize {
		return newFault(IndexFault, s.pc, 0, "ram write out of range")
	}
	s.ram[addr] = v
	return nil
}

// V register access. Index must be <= 0xF.

func (s *State) V(x byte) (byte, error) {
	if int(x) >= numRegisters {
		return 0, newFault(IndexFault, s.pc, 0, "v-register index out of range")
	}
	return s.v[x], nil
}

func (s *State) SetV(x byte, val byte) error {
	if int(x) >= numRegisters {
		return newFault(IndexFault, s.pc, 0, "v-register index out of range")
	}
	s.v[x] = val
	return nil
}

// VF is the flag register, register 0xF.
func (s *State) VF() byte { return s.v[0xF] }

// SetVF writes the flag register after a primary result.
func (s *State) SetVF(val byte) { s.v[0xF] = val }

// PC accessors.

func (s *State) PC() uint16     { return s.pc }
func (s *State) SetPC(pc uint16) { s.pc = pc }

// I accessors. I is stored as a 16-bit field; addition wraps in 16-bit
// space.
func (s *State) I() uint16      { return s.i }
func (s *State) SetI(i uint16)  { s.i = i }

// DT/ST accessors. Both saturate at 0 on decrement.

func (s *State) DT() byte    { return s.dt }
func (s *State) SetDT(v byte) { s.dt = v }
func (s *State) ST() byte    { return s.st }
func (s *State) SetST(v byte) { s.st = v }

func (s *State) DecrementTimers() {
	if s.dt > 0 {
		s.dt--
	}
	if s.st > 0 {
		s.st--
	}
}

// BuzzerActive reports whether the sound timer is currently nonzero.
func (s *State) BuzzerActive() bool { return s.st > 0 }

// Stack operations. SP denotes the count of live entries, 0 <= SP <= 16.

func (s *State) SP() uint8 { return s.sp }

func (s *State) Push(addr uint16) error {
	if s.sp >= stackDepth {
		return newFault(StackOverflow, s.pc, 0, "call stack full")
	}
	s.stack[s.sp] = addr
	s.sp++
	return nil
}

func (s *State) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, newFault(StackUnderflow, s.pc, 0, "call stack empty")
	}
	s.sp--
	return s.stack[s.sp], nil
}

// Framebuffer and Keypad return pointers to the embedded subsystems so
// callers can use their dedicated APIs.
func (s *State) Framebuffer() *Framebuffer { return &s.fb }
func (s *State) Keypad() *Keypad           { return &s.key }
