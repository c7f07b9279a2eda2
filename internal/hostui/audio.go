package hostui

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// buzzer plays a decoded tone when the buzzer turns on, tracking on/off
// state so a held buzzer does not restart the clip every frame. The clip
// plays to its end; turning the buzzer off does not cut it short.
type buzzer struct {
	streamer beep.StreamSeekCloser
	playing  bool
	log      *zap.SugaredLogger
}

// newBuzzer decodes an mp3 beep tone from assetPath and initializes the
// global beep speaker.
func newBuzzer(assetPath string, log *zap.SugaredLogger) (*buzzer, error) {
	f, err := os.Open(assetPath)
	if err != nil {
		return nil, errors.Wrapf(err, "open buzzer asset %s", assetPath)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode buzzer asset")
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}

	return &buzzer{streamer: streamer, log: log}, nil
}

// silentBuzzer is used when the beep asset can't be loaded (headless CI,
// missing assets dir): SetBuzzer becomes a no-op instead of a fatal
// startup error. NewWindow logs the fallback once.
func silentBuzzer(log *zap.SugaredLogger) *buzzer {
	return &buzzer{log: log}
}

// Set turns the buzzer on or off. It only acts on the off->on edge, so
// holding ST>0 across several frames doesn't restart the tone each frame.
func (b *buzzer) Set(on bool) {
	if b.streamer == nil {
		return
	}
	if on && !b.playing {
		b.playing = true
		if err := b.streamer.Seek(0); err != nil {
			b.log.Errorw("failed to rewind buzzer tone", "error", err)
		}
		speaker.Play(beep.Seq(b.streamer, beep.Callback(func() { b.playing = false })))
	}
	if !on {
		b.playing = false
	}
}
