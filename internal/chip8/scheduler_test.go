package chip8

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeHost is a scripted, non-blocking Host used to drive the Scheduler
// headlessly against an in-memory framebuffer and a scripted key source.
type fakeHost struct {
	keys        [NumKeys]bool
	presented   [][ScreenWidth * ScreenHeight]bool
	buzzerCalls []bool
	now         time.Time
}

func (h *fakeHost) KeysSnapshot() [NumKeys]bool { return h.keys }
func (h *fakeHost) Present(fb [ScreenWidth * ScreenHeight]bool) {
	h.presented = append(h.presented, fb)
}
func (h *fakeHost) SetBuzzer(on bool)       { h.buzzerCalls = append(h.buzzerCalls, on) }
func (h *fakeHost) Seed() int64             { return 1 }
func (h *fakeHost) Now() time.Time          { return h.now }
func (h *fakeHost) SleepUntil(time.Time)    {} // no-op: tests don't wait on real time

func TestSchedulerRunFrameDecrementsTimersOnce(t *testing.T) {
	vm := NewVM(DefaultQuirks(), 1)
	vm.State().SetDT(10)

	host := &fakeHost{now: time.Unix(0, 0)}
	sched := NewScheduler(vm, host, 8, nil)

	ok := sched.RunFrame()
	require.True(t, ok)
	require.Equal(t, byte(9), vm.State().DT())
	require.Len(t, host.presented, 1)
	require.Len(t, host.buzzerCalls, 1)
}

func TestSchedulerBreaksEarlyOnWaitForKey(t *testing.T) {
	vm := NewVM(DefaultQuirks(), 1)
	loadAt(t, vm, EntryPoint, 0xF0, 0x0A) // F00A, wait for key into V0

	host := &fakeHost{now: time.Unix(0, 0)}
	sched := NewScheduler(vm, host, 8, nil)

	sched.RunFrame()
	require.True(t, vm.Waiting())
	require.Equal(t, uint16(EntryPoint), vm.State().PC())

	host.keys[0x3] = true
	sched.RunFrame()
	require.False(t, vm.Waiting())
	v0, _ := vm.State().V(0)
	require.Equal(t, byte(0x3), v0)
}

func TestSchedulerHaltsOnFault(t *testing.T) {
	vm := NewVM(DefaultQuirks(), 1)
	loadAt(t, vm, EntryPoint, 0x51, 0x01) // malformed 5XY1

	host := &fakeHost{now: time.Unix(0, 0)}
	sched := NewScheduler(vm, host, 8, nil)

	ok := sched.RunFrame()
	require.False(t, ok)
	require.True(t, vm.Halted())
}
