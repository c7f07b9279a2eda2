package chip8

import "math/rand"

// Executor implements opcode semantics against a State, honoring the two
// configurable quirks. It holds no architectural state of its own — one
// Executor borrows a *State mutably for the duration of a single cycle.
type Executor struct {
	quirks Quirks
	rng    *rand.Rand
}

// NewExecutor builds an Executor bound to a fixed quirk set and a PRNG
// seeded once at construction (see DESIGN.md: the core owns its own PRNG
// rather than calling out to the Host every CXNN).
func NewExecutor(quirks Quirks, seed int64) *Executor {
	return &Executor{
		quirks: quirks,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Execute runs one decoded instruction against s. The PC field in s must
// already reflect the default +2 pre-advance (done by the caller before
// fetching operands); Execute overwrites PC for jump/call/ret/skip
// opcodes and, for FX0A with no pending key, reports waiting=true so the
// caller can undo the pre-advance and re-issue the same instruction next
// cycle.
func (e *Executor) Execute(s *State, ins Instruction) (waiting bool, err error) {
	switch ins.Op {
	case OpNOP:
		// treated as a no-op for robustness

	case OpCLS:
		s.Framebuffer().Clear()

	case OpRET:
		addr, err := s.Pop()
		if err != nil {
			return false, err
		}
		s.SetPC(addr)

	case OpJP:
		s.SetPC(ins.NNN)

	case OpCALL:
		if err := s.Push(s.PC()); err != nil {
			return false, err
		}
		s.SetPC(ins.NNN)

	case OpSE_VX_NN:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		if vx == ins.NN {
			s.SetPC(s.PC() + 2)
		}

	case OpSNE_VX_NN:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		if vx != ins.NN {
			s.SetPC(s.PC() + 2)
		}

	case OpSE_VX_VY:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		if vx == vy {
			s.SetPC(s.PC() + 2)
		}

	case OpLD_VX_NN:
		if err := s.SetV(ins.X, ins.NN); err != nil {
			return false, err
		}

	case OpADD_VX_NN:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		// VF is not affected.
		if err := s.SetV(ins.X, vx+ins.NN); err != nil {
			return false, err
		}

	case OpLD_VX_VY:
		vy, err := s.V(ins.Y)
		if err != nil {
			return false, err
		}
		if err := s.SetV(ins.X, vy); err != nil {
			return false, err
		}

	case OpOR:
		if err := e.logic(s, ins, func(a, b byte) byte { return a | b }); err != nil {
			return false, err
		}

	case OpAND:
		if err := e.logic(s, ins, func(a, b byte) byte { return a & b }); err != nil {
			return false, err
		}

	case OpXOR:
		if err := e.logic(s, ins, func(a, b byte) byte { return a ^ b }); err != nil {
			return false, err
		}

	case OpADD_VX_VY:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		sum := uint16(vx) + uint16(vy)
		if err := s.SetV(ins.X, byte(sum)); err != nil {
			return false, err
		}
		s.SetVF(boolByte(sum > 0xFF))

	case OpSUB:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		if err := s.SetV(ins.X, vx-vy); err != nil {
			return false, err
		}
		s.SetVF(boolByte(vx >= vy))

	case OpSHR:
		src, err := e.shiftSource(s, ins)
		if err != nil {
			return false, err
		}
		if err := s.SetV(ins.X, src>>1); err != nil {
			return false, err
		}
		s.SetVF(src & 0x01)

	case OpSUBN:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		if err := s.SetV(ins.X, vy-vx); err != nil {
			return false, err
		}
		s.SetVF(boolByte(vy >= vx))

	case OpSHL:
		src, err := e.shiftSource(s, ins)
		if err != nil {
			return false, err
		}
		if err := s.SetV(ins.X, src<<1); err != nil {
			return false, err
		}
		s.SetVF((src >> 7) & 0x01)

	case OpSNE_VX_VY:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		if vx != vy {
			s.SetPC(s.PC() + 2)
		}

	case OpLD_I:
		s.SetI(ins.NNN)

	case OpJP_V0:
		v0, err := s.V(0)
		if err != nil {
			return false, err
		}
		s.SetPC((ins.NNN + uint16(v0)) & 0x0FFF)

	case OpRND:
		r := byte(e.rng.Intn(256))
		if err := s.SetV(ins.X, r&ins.NN); err != nil {
			return false, err
		}

	case OpDRW:
		vx, vy, err := e.pair(s, ins)
		if err != nil {
			return false, err
		}
		addr := s.I()
		n := int(ins.N)
		if int(addr)+n > ramSize {
			return false, newFault(IndexFault, s.PC(), ins.Word, "sprite read out of range")
		}
		collision := s.Framebuffer().drawSprite(s.ram[:], addr, vx, vy, n)
		s.SetVF(boolByte(collision))

	case OpSKP:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		if s.Keypad().IsDown(vx & 0x0F) {
			s.SetPC(s.PC() + 2)
		}

	case OpSKNP:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		if !s.Keypad().IsDown(vx & 0x0F) {
			s.SetPC(s.PC() + 2)
		}

	case OpLD_VX_DT:
		if err := s.SetV(ins.X, s.DT()); err != nil {
			return false, err
		}

	case OpLD_VX_K:
		key, ok := s.Keypad().PopJustPressed()
		if !ok {
			return true, nil
		}
		if err := s.SetV(ins.X, key); err != nil {
			return false, err
		}

	case OpLD_DT_VX:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		s.SetDT(vx)

	case OpLD_ST_VX:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		s.SetST(vx)

	case OpADD_I_VX:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		s.SetI((s.I() + uint16(vx)) & 0xFFFF)

	case OpLD_F_VX:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		s.SetI(uint16(vx&0x0F) * fontBytesPerGlyph)

	case OpLD_B_VX:
		vx, err := s.V(ins.X)
		if err != nil {
			return false, err
		}
		h, t, o := bcd(vx)
		addr := s.I()
		if int(addr)+2 >= ramSize {
			return false, newFault(IndexFault, s.PC(), ins.Word, "BCD write out of range")
		}
		if err := s.WriteByte(addr, h); err != nil {
			return false, err
		}
		if err := s.WriteByte(addr+1, t); err != nil {
			return false, err
		}
		if err := s.WriteByte(addr+2, o); err != nil {
			return false, err
		}

	case OpLD_I_VX:
		for k := byte(0); k <= ins.X; k++ {
			vk, err := s.V(k)
			if err != nil {
				return false, err
			}
			if err := s.WriteByte(s.I()+uint16(k), vk); err != nil {
				return false, err
			}
		}
		if e.quirks.LoadStoreAdvancesI {
			s.SetI(s.I() + uint16(ins.X) + 1)
		}

	case OpLD_VX_I:
		for k := byte(0); k <= ins.X; k++ {
			vk, err := s.ReadByte(s.I() + uint16(k))
			if err != nil {
				return false, err
			}
			if err := s.SetV(k, vk); err != nil {
				return false, err
			}
		}
		if e.quirks.LoadStoreAdvancesI {
			s.SetI(s.I() + uint16(ins.X) + 1)
		}

	default:
		return false, newFault(UnknownOpcode, s.PC(), ins.Word, "decoded op has no executor branch")
	}

	return false, nil
}

// pair reads VX and VY together, the common case for the comparison and
// ALU opcodes.
func (e *Executor) pair(s *State, ins Instruction) (vx, vy byte, err error) {
	vx, err = s.V(ins.X)
	if err != nil {
		return 0, 0, err
	}
	vy, err = s.V(ins.Y)
	if err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

// logic implements 8XY1/8XY2/8XY3. VF is left untouched — see SPEC_FULL.md's
// Open Question decision.
func (e *Executor) logic(s *State, ins Instruction, op func(a, b byte) byte) error {
	vx, vy, err := e.pair(s, ins)
	if err != nil {
		return err
	}
	return s.SetV(ins.X, op(vx, vy))
}

// shiftSource resolves which register 8XY6/8XYE reads from, per the
// shift_uses_vy quirk.
func (e *Executor) shiftSource(s *State, ins Instruction) (byte, error) {
	if e.quirks.ShiftUsesVY {
		return s.V(ins.Y)
	}
	return s.V(ins.X)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
