package domain

import (
	"context"
	"time"
)

// SpeechSampleRate is the fixed output rate of the speech service: mono
// 16-bit little-endian PCM at 24 kHz.
const SpeechSampleRate = 24000

// SpeechMaxChars is the default hard cap on text sent for synthesis.
const SpeechMaxChars = 3000

// PlaybackState is the lifecycle state of a playback session.
type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota
	PlaybackLoading
	PlaybackPlaying
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackLoading:
		return "loading"
	case PlaybackPlaying:
		return "playing"
	default:
		return "idle"
	}
}

// PCMBuffer is a decoded mono audio buffer with normalized samples in
// [-1.0, 1.0].
type PCMBuffer struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playing time of the buffer.
func (b *PCMBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// AudioVoice is a single started output that can be stopped.
type AudioVoice interface {
	Stop()
}

// AudioOutput abstracts the speaker device. Start begins playing the buffer
// and invokes onComplete once when playback drains naturally (not when the
// voice is stopped).
type AudioOutput interface {
	Start(buf *PCMBuffer, onComplete func()) (AudioVoice, error)
	Close() error
}

// SpeechSynthesizer produces base64-encoded raw PCM speech for a text.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// AudioPipeline manages the single cancellable playback session of a view:
// at most one audio source is active at any observable instant. Starting a
// new session force-stops the previous one first.
type AudioPipeline interface {
	// Play synthesizes the text and plays it, transitioning
	// Idle -> Loading -> Playing. On synthesis or decode failure the
	// session returns to Idle and the error is reported; the session is
	// never left stuck in Loading.
	Play(sourceID, text string) error

	// Stop forces the session to Idle from any state. Safe to call
	// mid-synthesis and mid-playback; idempotent when already Idle.
	Stop()

	State() PlaybackState
	SourceID() string

	// SetOnComplete registers the listener invoked when playback reaches
	// the end of the buffer and the session returns to Idle on its own.
	SetOnComplete(fn func(sourceID string))

	// Close stops any session and releases the output device.
	Close() error
}
