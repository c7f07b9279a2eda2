package chip8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFramebufferClipsAtEdges(t *testing.T) {
	var fb Framebuffer
	ram := make([]byte, ramSize)
	ram[0] = 0xFF // full row of 8 set bits

	// origin near the right edge: columns past 63 clip rather than wrap
	collision := fb.drawSprite(ram, 0, ScreenWidth-2, 0, 1)
	require.False(t, collision)
	require.True(t, fb.Get(ScreenWidth-2, 0))
	require.True(t, fb.Get(ScreenWidth-1, 0))
	// no pixel should have wrapped onto column 0
	require.False(t, fb.Get(0, 0))
}

func TestFramebufferXORIdempotence(t *testing.T) {
	var fb Framebuffer
	ram := make([]byte, ramSize)
	ram[0] = 0x80 // single bit, top-left

	c1 := fb.drawSprite(ram, 0, 0, 0, 1)
	require.False(t, c1)
	require.True(t, fb.Get(0, 0))

	c2 := fb.drawSprite(ram, 0, 0, 0, 1)
	require.True(t, c2)
	require.False(t, fb.Get(0, 0))
}

func TestFramebufferClear(t *testing.T) {
	var fb Framebuffer
	ram := make([]byte, ramSize)
	ram[0] = 0xFF
	fb.drawSprite(ram, 0, 0, 0, 1)
	fb.Clear()

	snap := fb.Snapshot()
	for i, on := range snap {
		require.False(t, on, "pixel %d should be clear", i)
	}
}
