package chip8

// VM ties State, the Decoder, and the Executor into a single fetch/
// decode/execute pipeline, and owns the halt/wait flags that control
// whether the Scheduler keeps issuing cycles.
type VM struct {
	state *State
	exec  *Executor

	waiting   bool
	halted    bool
	lastFault error
}

// NewVM constructs a VM in its reset condition with the given quirks and a
// PRNG seed (see Host.Seed).
func NewVM(quirks Quirks, seed int64) *VM {
	return &VM{
		state: NewState(),
		exec:  NewExecutor(quirks, seed),
	}
}

// State exposes the architectural state for inspection (tests, a debugger
// a caller might bolt on) and for LoadROM.
func (vm *VM) State() *State { return vm.state }

// LoadROM validates and copies rom into RAM at EntryPoint.
func (vm *VM) LoadROM(rom []byte) error {
	return LoadROM(vm.state, rom)
}

// Reset restores the VM to its initial condition and clears the halt/wait
// flags. The font table survives, per State.Reset.
func (vm *VM) Reset() {
	vm.state.Reset()
	vm.waiting = false
	vm.halted = false
	vm.lastFault = nil
}

// Halted reports whether an executor fault has stopped the CPU pipeline.
// Timers may continue to run down even while halted; it is the
// Scheduler's job to stop issuing cycles once this is true.
func (vm *VM) Halted() bool { return vm.halted }

// LastFault returns the fault that halted the VM, or nil.
func (vm *VM) LastFault() error { return vm.lastFault }

// Waiting reports whether the VM is suspended in an FX0A wait-for-key.
func (vm *VM) Waiting() bool { return vm.waiting }

// Step runs one fetch/decode/execute cycle. If the VM is already halted,
// Step is a no-op that returns the prior fault.
func (vm *VM) Step() error {
	if vm.halted {
		return vm.lastFault
	}

	pc := vm.state.PC()
	hi, err := vm.state.ReadByte(pc)
	if err != nil {
		return vm.fault(err, pc, 0)
	}
	lo, err := vm.state.ReadByte(pc + 1)
	if err != nil {
		return vm.fault(err, pc, 0)
	}
	word := combineBytes(hi, lo)

	ins, err := Decode(word)
	if err != nil {
		return vm.fault(err, pc, word)
	}

	// Pre-advance PC by the default instruction width; opcodes that jump,
	// call, return, or skip overwrite this before Step returns.
	vm.state.SetPC(pc + 2)

	waiting, err := vm.exec.Execute(vm.state, ins)
	if err != nil {
		return vm.fault(err, pc, word)
	}

	if waiting {
		// FX0A with no key available: undo the pre-advance so the same
		// instruction is re-fetched next cycle. Timers still tick; only
		// retirement of this instruction is suspended.
		vm.state.SetPC(pc)
	}
	vm.waiting = waiting

	return nil
}

// TickTimers decrements DT/ST by one and reports the resulting buzzer
// state. Must be called exactly once per frame, after all of the frame's
// cycles.
func (vm *VM) TickTimers() (buzzerOn bool) {
	vm.state.DecrementTimers()
	return vm.state.BuzzerActive()
}

// fault records a halting condition. It sets the fault's PC to the address
// of the instruction that raised it (executor and State faults are built
// after the PC pre-advance) and fills in Word when the caller didn't set it.
func (vm *VM) fault(err error, pc, word uint16) error {
	if f, ok := err.(*Fault); ok {
		f.PC = pc
		if f.Word == 0 {
			f.Word = word
		}
	}
	vm.halted = true
	vm.lastFault = err
	return err
}
