package speaker

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"kerygma-studio/internal/domain"

	"github.com/ebitengine/oto/v3"
)

// Output plays decoded speech buffers on the default audio device. A single
// oto context is shared for the lifetime of the process; oto does not allow
// creating a second one.
type Output struct {
	ctx    *oto.Context
	logger domain.Logger
}

// NewOutput opens the audio device at the speech sample rate.
func NewOutput(logger domain.Logger) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   domain.SpeechSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	return &Output{ctx: ctx, logger: logger}, nil
}

// Start begins playback and invokes onComplete once the buffer has drained.
// The returned voice stops playback early; a stopped voice never fires
// onComplete.
func (o *Output) Start(buf *domain.PCMBuffer, onComplete func()) (domain.AudioVoice, error) {
	raw := make([]byte, 0, len(buf.Samples)*4)
	for _, s := range buf.Samples {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(s))
	}

	player := o.ctx.NewPlayer(bytes.NewReader(raw))
	player.Play()

	v := &voice{player: player}
	go v.watch(onComplete)
	return v, nil
}

func (o *Output) Close() error {
	// The oto context has no Close; suspending releases the device.
	return o.ctx.Suspend()
}

type voice struct {
	mu      sync.Mutex
	player  *oto.Player
	stopped bool
}

func (v *voice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stopped {
		return
	}
	v.stopped = true
	v.player.Close()
}

// watch polls the player until the buffer drains, then fires onComplete
// unless the voice was stopped first.
func (v *voice) watch(onComplete func()) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		v.mu.Lock()
		if v.stopped {
			v.mu.Unlock()
			return
		}
		if !v.player.IsPlaying() {
			v.stopped = true
			v.player.Close()
			v.mu.Unlock()
			if onComplete != nil {
				onComplete()
			}
			return
		}
		v.mu.Unlock()
	}
}
