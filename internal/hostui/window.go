// Package hostui implements chip8.Host against a real window and speaker:
// a pixel/pixelgl display and a faiface/beep buzzer.
package hostui

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/google/uuid"
	"github.com/mbarrington/chip8vm/internal/chip8"
	"github.com/mbarrington/chip8vm/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// keyMap mirrors the conventional CHIP-8 keypad layout over QWERTY.
var keyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window implements chip8.Host on top of a pixelgl window and a beep
// buzzer. It must be constructed on the main thread, since pixelgl.Run
// pins all GLFW/OpenGL calls there.
type Window struct {
	win    *pixelgl.Window
	buzzer *buzzer
	runID  uuid.UUID
	log    *zap.SugaredLogger

	pixelW, pixelH float64
}

var _ chip8.Host = (*Window)(nil)

// NewWindow opens a pixelgl window sized by cfg.Scale and wires a beep
// buzzer loaded from assetPath (a short beep tone, e.g. "assets/beep.mp3").
// log gets a "run_id" field identifying this session so concurrent
// emulator sessions are distinguishable in a shared log sink.
func NewWindow(cfg config.Chip8Settings, assetPath string, log *zap.SugaredLogger) (*Window, error) {
	runID := uuid.New()
	log = log.With("run_id", runID.String())

	scale := float64(cfg.Scale)
	if scale <= 0 {
		scale = 16
	}
	width := float64(chip8.ScreenWidth) * scale
	height := float64(chip8.ScreenHeight) * scale

	pixelCfg := pixelgl.WindowConfig{
		Title:  "chip8vm",
		Bounds: pixel.R(0, 0, width, height),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(pixelCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create window")
	}

	bz, err := newBuzzer(assetPath, log)
	if err != nil {
		log.Errorw("buzzer unavailable, running silent", "error", err)
		bz = silentBuzzer(log)
	}

	return &Window{
		win:    win,
		buzzer: bz,
		runID:  runID,
		log:    log,
		pixelW: scale,
		pixelH: scale,
	}, nil
}

// Closed reports whether the user closed the window. Not part of
// chip8.Host — cmd/run.go polls it to decide when to stop the Scheduler.
func (w *Window) Closed() bool { return w.win.Closed() }

// KeysSnapshot implements chip8.Host.
func (w *Window) KeysSnapshot() [chip8.NumKeys]bool {
	w.win.UpdateInput()
	var snap [chip8.NumKeys]bool
	for hex, btn := range keyMap {
		snap[hex] = w.win.Pressed(btn)
	}
	return snap
}

// Present implements chip8.Host, drawing the framebuffer as filled
// rectangles with row 0 at the top (pixel's coordinate origin is
// bottom-left, so rows are flipped on the way out).
func (w *Window) Present(fb [chip8.ScreenWidth * chip8.ScreenHeight]bool) {
	w.win.Clear(colornames.Black)

	imd := imdraw.New(nil)
	imd.Color = pixel.RGB(1, 1, 1)

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if !fb[y*chip8.ScreenWidth+x] {
				continue
			}
			drawY := chip8.ScreenHeight - 1 - y
			imd.Push(pixel.V(w.pixelW*float64(x), w.pixelH*float64(drawY)))
			imd.Push(pixel.V(w.pixelW*float64(x)+w.pixelW, w.pixelH*float64(drawY)+w.pixelH))
			imd.Rectangle(0)
		}
	}

	imd.Draw(w.win)
	w.win.Update()
}

// SetBuzzer implements chip8.Host.
func (w *Window) SetBuzzer(on bool) { w.buzzer.Set(on) }

// Seed implements chip8.Host, seeding the core's PRNG once at construction.
func (w *Window) Seed() int64 { return time.Now().UnixNano() }

// Now implements chip8.Host.
func (w *Window) Now() time.Time { return time.Now() }

// SleepUntil implements chip8.Host.
func (w *Window) SleepUntil(deadline time.Time) {
	if d := time.Until(deadline); d > 0 {
		time.Sleep(d)
	}
}
