package chip8

import "time"

// Host is the narrow capability set the core consumes from whatever
// drives it: frame pacing, key state, a pixel sink, and a buzzer signal.
// internal/hostui supplies the window/audio-backed implementation this
// repository ships.
type Host interface {
	// KeysSnapshot returns a copy of which of the 16 hex keys are
	// currently held down. The core never takes a lock on this data —
	// if the Host samples input on another thread it must hand back a
	// snapshot, not a live view.
	KeysSnapshot() [NumKeys]bool

	// Present delivers a framebuffer snapshot for display.
	Present(fb [ScreenWidth * ScreenHeight]bool)

	// SetBuzzer turns the buzzer on or off.
	SetBuzzer(on bool)

	// Seed returns a value the core uses to seed its own PRNG once at
	// VM construction; the core owns the PRNG, the host only supplies
	// a seed.
	Seed() int64

	// Now and SleepUntil drive frame pacing.
	Now() time.Time
	SleepUntil(deadline time.Time)
}
