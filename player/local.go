package player

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/samber/lo"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/log"
)

// speakerRate is the rate the output device was opened with. Zero means closed.
var speakerRate beep.SampleRate

// decoders maps lower-case extensions to beep decoders.
var decoders = map[string]func(io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error){
	".wav": func(f io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".mp3": func(f io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
}

// Local plays an audio file on the default output device.
type Local struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    int

	done chan struct{}
	once sync.Once
}

// NewLocal returns an idle local host at full volume.
func NewLocal() *Local {
	return &Local{level: 100, done: make(chan struct{})}
}

// Open decodes a wav or mp3 file and starts playing it, replacing the current one.
func (l *Local) Open(target string) error {
	ext := strings.ToLower(filepath.Ext(target))
	decode, ok := decoders[ext]
	if !ok {
		return fmt.Errorf("unsupported audio format %q, available: %v", ext, lo.Keys(decoders))
	}

	file, err := filesystem.API().Open(target)
	if err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}

	streamer, format, err := decode(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("decode %s: %w", target, err)
	}

	if speakerRate == 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond)); err != nil {
			streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerRate = format.SampleRate
	}

	var source beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		source = beep.Resample(4, format.SampleRate, speakerRate, streamer)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	speaker.Clear()
	if l.streamer != nil {
		_ = l.streamer.Close()
	}

	volume, silent := gain(l.level)
	l.streamer, l.format = streamer, format
	l.volume = &effects.Volume{Streamer: source, Base: 2, Volume: volume, Silent: silent}
	l.ctrl = &beep.Ctrl{Streamer: l.volume}

	speaker.Play(beep.Seq(l.ctrl, beep.Callback(func() {
		log.Infof("local playback of %s finished", target)
		l.finish()
	})))
	return nil
}

// Status reads the decoder position under the speaker lock.
func (l *Local) Status() (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.streamer == nil {
		return Status{Volume: l.level}, ErrNotPlaying
	}

	speaker.Lock()
	defer speaker.Unlock()
	return Status{
		TimePos:  l.format.SampleRate.D(l.streamer.Position()).Seconds(),
		Duration: l.format.SampleRate.D(l.streamer.Len()).Seconds(),
		Volume:   l.level,
		Paused:   l.ctrl.Paused,
	}, nil
}

// Seek moves the decoder to an absolute position in seconds.
func (l *Local) Seek(seconds float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.streamer == nil {
		return ErrNotPlaying
	}

	speaker.Lock()
	defer speaker.Unlock()
	n := l.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = lo.Clamp(n, 0, max(l.streamer.Len()-1, 0))
	if err := l.streamer.Seek(n); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// SetVolume maps 0-100 onto a base-2 gain. Zero silences the output.
func (l *Local) SetVolume(volume int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = lo.Clamp(volume, 0, 100)
	if l.volume == nil {
		return nil
	}

	speaker.Lock()
	l.volume.Volume, l.volume.Silent = gain(l.level)
	speaker.Unlock()
	return nil
}

// TogglePause pauses or resumes the output.
func (l *Local) TogglePause() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ctrl == nil {
		return ErrNotPlaying
	}

	speaker.Lock()
	l.ctrl.Paused = !l.ctrl.Paused
	speaker.Unlock()
	return nil
}

// Close stops the output and releases the decoder.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.streamer != nil {
		speaker.Clear()
		_ = l.streamer.Close()
		l.streamer = nil
		l.ctrl = nil
		l.volume = nil
	}
	l.finish()
	return nil
}

// Wait returns a channel that is closed when the file ends or the host is closed.
func (l *Local) Wait() <-chan struct{} {
	return l.done
}

func (l *Local) finish() {
	l.once.Do(func() { close(l.done) })
}

// gain converts a 0-100 level to an effects.Volume exponent with base 2.
// 100 is unity, 50 is one halving.
func gain(level int) (volume float64, silent bool) {
	if level <= 0 {
		return 0, true
	}
	return math.Log2(float64(level) / 100), false
}
