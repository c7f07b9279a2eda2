package chip8

// Screen dimensions, fixed by the CHIP-8 spec.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the 64x32 monochrome pixel grid. Drawing is XOR; a pixel
// that is turned off as a result of a draw is reported back to the caller
// so DXYN can set VF.
type Framebuffer struct {
	pixels [ScreenWidth * ScreenHeight]bool
}

// Clear sets every pixel off.
func (f *Framebuffer) Clear() {
	f.pixels = [ScreenWidth * ScreenHeight]bool{}
}

// Get returns the pixel at (x, y). Out-of-range coordinates return false;
// callers (DXYN) are expected to pre-clip.
func (f *Framebuffer) Get(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return f.pixels[y*ScreenWidth+x]
}

// xor flips the pixel at (x, y) and reports whether it was lit before the
// flip (i.e. whether this XOR is a collision).
func (f *Framebuffer) xor(x, y int) (collision bool) {
	idx := y*ScreenWidth + x
	wasLit := f.pixels[idx]
	f.pixels[idx] = !wasLit
	return wasLit
}

// Snapshot copies the current pixel grid for presentation to a Host. The
// copy means the Host never aliases core-owned memory.
func (f *Framebuffer) Snapshot() [ScreenWidth * ScreenHeight]bool {
	return f.pixels
}

// drawSprite XORs an N-byte sprite read from ram[addr:addr+n] onto the
// framebuffer with its origin at (vx, vy). The origin wraps; rows/columns
// that would extend past the right or bottom edge clip rather than wrap
// (COSMAC VIP behavior — see SPEC_FULL.md's Open Question decisions).
// Returns whether any XOR turned a lit pixel off.
func (f *Framebuffer) drawSprite(ram []byte, addr uint16, vx, vy byte, n int) bool {
	originX := wrapCoord(vx, ScreenWidth)
	originY := wrapCoord(vy, ScreenHeight)

	collision := false
	for row := 0; row < n; row++ {
		y := originY + row
		if y >= ScreenHeight {
			break
		}
		spriteByte := ram[int(addr)+row]
		for col := 0; col < 8; col++ {
			x := originX + col
			if x >= ScreenWidth {
				break
			}
			bit := spriteByte & (0x80 >> uint(col))
			if bit == 0 {
				continue
			}
			if f.xor(x, y) {
				collision = true
			}
		}
	}
	return collision
}
