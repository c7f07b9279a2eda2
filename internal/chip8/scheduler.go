package chip8

import "time"

// Logger is the narrow structured-logging capability the scheduler uses
// for diagnostics (executor faults, frame stats).
// *zap.SugaredLogger satisfies this directly; see internal/logging.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// noopLogger is used when no Logger is supplied, so the Scheduler never
// needs a nil check on the hot path.
type noopLogger struct{}

func (noopLogger) Debugw(string, ...interface{}) {}
func (noopLogger) Errorw(string, ...interface{}) {}

const refreshRateHz = 60

// Scheduler runs the per-frame loop: sample keys, run up to cyclesPerFrame
// cycles, decrement timers once, present, sleep to the next 1/60s
// boundary. Within this package it is the only place frame pacing and the
// FX0A early-break live (cmd/run.go paces its own loop around RunFrame);
// VM itself knows nothing about frames.
type Scheduler struct {
	vm             *VM
	host           Host
	cyclesPerFrame int
	log            Logger
}

// NewScheduler builds a Scheduler. cyclesPerFrame must be positive
// (typically 8-20); a Logger may be nil, in which case diagnostics are
// discarded.
func NewScheduler(vm *VM, host Host, cyclesPerFrame int, log Logger) *Scheduler {
	if log == nil {
		log = noopLogger{}
	}
	return &Scheduler{vm: vm, host: host, cyclesPerFrame: cyclesPerFrame, log: log}
}

// RunFrame executes exactly one frame's worth of work and reports whether
// the VM is still able to make progress (false once it has halted on a
// fault).
func (s *Scheduler) RunFrame() bool {
	keys := s.host.KeysSnapshot()
	s.vm.State().Keypad().ApplySnapshot(keys)

	cycles := 0
	for i := 0; i < s.cyclesPerFrame; i++ {
		if s.vm.Halted() {
			break
		}
		if s.vm.Waiting() && !s.vm.State().Keypad().HasPendingPress() {
			break
		}
		if err := s.vm.Step(); err != nil {
			s.log.Errorw("executor fault, halting cpu", "error", err)
			break
		}
		cycles++
	}

	buzzerOn := s.vm.TickTimers()
	s.host.SetBuzzer(buzzerOn)
	s.host.Present(s.vm.State().Framebuffer().Snapshot())

	s.log.Debugw("frame complete", "cycles", cycles, "buzzer", buzzerOn, "waiting", s.vm.Waiting())

	return !s.vm.Halted()
}

// Run drives RunFrame in a loop at refreshRateHz, sleeping to the next
// frame boundary via the Host's clock, until stop is closed or the VM
// halts. It exits cleanly at a frame boundary — an in-flight frame always
// completes first.
func (s *Scheduler) Run(stop <-chan struct{}) error {
	frameDuration := time.Second / refreshRateHz
	next := s.host.Now().Add(frameDuration)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if !s.RunFrame() {
			return s.vm.LastFault()
		}

		s.host.SleepUntil(next)
		next = next.Add(frameDuration)
	}
}
