package chip8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStateReset(t *testing.T) {
	s := NewState()

	require.Equal(t, uint16(EntryPoint), s.PC())
	require.Equal(t, uint8(0), s.SP())
	require.Equal(t, uint16(0), s.I())

	for i := 0; i < 80; i++ {
		require.Equal(t, fontSet[i], s.ram[i], "font byte %d", i)
	}
	for i := 80; i < ramSize; i++ {
		require.Zero(t, s.ram[i], "reserved byte %d should be zero", i)
	}
}

func TestStateResetPreservesFont(t *testing.T) {
	s := NewState()

	s.SetPC(0x300)
	require.NoError(t, s.SetV(0, 42))
	s.SetI(100)
	require.NoError(t, s.Push(0x250))
	s.SetDT(10)
	require.NoError(t, s.WriteByte(0x200, 0xFF))

	s.Reset()

	require.Equal(t, uint16(EntryPoint), s.PC())
	v0, err := s.V(0)
	require.NoError(t, err)
	require.Zero(t, v0)
	require.Zero(t, s.I())
	require.Zero(t, s.SP())
	require.Zero(t, s.DT())
	b, err := s.ReadByte(0x200)
	require.NoError(t, err)
	require.Zero(t, b)
	require.Equal(t, fontSet[0], s.ram[0])
}

func TestStateRAMBoundsFault(t *testing.T) {
	s := NewState()

	_, err := s.ReadByte(ramSize)
	require.Error(t, err)
	require.Equal(t, IndexFault, err.(*Fault).Kind)

	err = s.WriteByte(ramSize, 1)
	require.Error(t, err)
}

func TestStateVRegisterBoundsFault(t *testing.T) {
	s := NewState()

	_, err := s.V(0x10)
	require.Error(t, err)
	require.Equal(t, IndexFault, err.(*Fault).Kind)

	err = s.SetV(0x10, 1)
	require.Error(t, err)
}

func TestStackPushPopLaw(t *testing.T) {
	s := NewState()

	require.NoError(t, s.Push(0x300))
	require.Equal(t, uint8(1), s.SP())

	addr, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, uint16(0x300), addr)
	require.Equal(t, uint8(0), s.SP())
}

func TestStackOverflowAndUnderflow(t *testing.T) {
	s := NewState()

	for i := 0; i < stackDepth; i++ {
		require.NoError(t, s.Push(uint16(i)))
	}
	err := s.Push(0xFFF)
	require.Error(t, err)
	require.Equal(t, StackOverflow, err.(*Fault).Kind)

	s2 := NewState()
	_, err = s2.Pop()
	require.Error(t, err)
	require.Equal(t, StackUnderflow, err.(*Fault).Kind)
}

func TestTimerDecayLaw(t *testing.T) {
	s := NewState()
	s.SetDT(5)
	s.SetST(3)

	for i := 0; i < 10; i++ {
		s.DecrementTimers()
	}

	require.Zero(t, s.DT())
	require.Zero(t, s.ST())
	require.False(t, s.BuzzerActive())
}
