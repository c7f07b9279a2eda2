package main

import (
	"github.com/faiface/pixel/pixelgl"
	"github.com/mbarrington/chip8vm/cmd"
)

func main() {
	// pixelgl needs access to the main thread, so the whole CLI runs
	// inside it — including subcommands (like `version`) that never touch
	// a window, which is harmless.
	pixelgl.Run(cmd.Execute)
}
