package service

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"sync"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

// DecodePCM decodes a base64 payload of raw little-endian 16-bit PCM into a
// normalized mono buffer at the speech sample rate. Every byte pair becomes
// one sample divided by 32768; a trailing odd byte is discarded.
func DecodePCM(payload string) (*domain.PCMBuffer, error) {
	if payload == "" {
		return nil, apperrors.NewAudioDecodeError("audio payload is empty", domain.ErrAudioDecode)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.NewAudioDecodeError("audio payload is not valid base64", err)
	}

	count := len(raw) / 2
	samples := make([]float32, count)
	for i := 0; i < count; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		samples[i] = float32(v) / 32768.0
	}

	return &domain.PCMBuffer{
		Samples:    samples,
		SampleRate: domain.SpeechSampleRate,
	}, nil
}

// EncodeWAV packs a decoded buffer into a mono 16-bit WAV container so the
// synthesize endpoint can return playable bytes.
func EncodeWAV(buf *domain.PCMBuffer) []byte {
	dataLen := len(buf.Samples) * 2
	out := make([]byte, 0, 44+dataLen)

	out = append(out, []byte("RIFF")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+dataLen))
	out = append(out, []byte("WAVE")...)

	out = append(out, []byte("fmt ")...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, 1) // mono
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.SampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(buf.SampleRate*2))
	out = binary.LittleEndian.AppendUint16(out, 2)
	out = binary.LittleEndian.AppendUint16(out, 16)

	out = append(out, []byte("data")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(dataLen))
	for _, s := range buf.Samples {
		v := int16(s * 32768.0)
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}
	return out
}

type audioPipeline struct {
	synth  domain.SpeechSynthesizer
	output domain.AudioOutput
	logger domain.Logger

	mu         sync.Mutex
	state      domain.PlaybackState
	sourceID   string
	voice      domain.AudioVoice
	cancel     context.CancelFunc
	generation uint64
	onComplete func(sourceID string)
}

// NewAudioPipeline creates the single playback session manager for a view.
// Tear it down with Close when the view exits.
func NewAudioPipeline(synth domain.SpeechSynthesizer, output domain.AudioOutput, logger domain.Logger) domain.AudioPipeline {
	return &audioPipeline{
		synth:  synth,
		output: output,
		logger: logger,
		state:  domain.PlaybackIdle,
	}
}

func (p *audioPipeline) Play(sourceID, text string) error {
	p.mu.Lock()
	p.stopLocked()
	gen := p.generation
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = domain.PlaybackLoading
	p.sourceID = sourceID
	p.mu.Unlock()

	payload, err := p.synth.Synthesize(ctx, text)
	if err != nil {
		if p.resetIfCurrent(gen) {
			return apperrors.NewNetworkError("speech synthesis failed", err)
		}
		return nil // session was stopped while loading
	}

	buf, err := DecodePCM(payload)
	if err != nil {
		if p.resetIfCurrent(gen) {
			p.logger.Error("Failed to decode speech payload", err, "source", sourceID)
			return err
		}
		return nil
	}

	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return nil
	}
	voice, err := p.output.Start(buf, func() { p.completed(gen) })
	if err != nil {
		p.state = domain.PlaybackIdle
		p.sourceID = ""
		p.cancel = nil
		p.mu.Unlock()
		return apperrors.NewInternalError("failed to start playback", err)
	}
	p.voice = voice
	p.state = domain.PlaybackPlaying
	p.mu.Unlock()

	p.logger.Debug("Playback started", "source", sourceID, "duration", buf.Duration())
	return nil
}

func (p *audioPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked forces the session to Idle: cancels an in-flight synthesis,
// stops the active voice, and bumps the generation so stale callbacks from
// the previous session are ignored.
func (p *audioPipeline) stopLocked() {
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.voice != nil {
		p.voice.Stop()
		p.voice = nil
	}
	p.state = domain.PlaybackIdle
	p.sourceID = ""
}

// resetIfCurrent returns the session to Idle when it still belongs to the
// given generation. Reports whether the caller owns the failure.
func (p *audioPipeline) resetIfCurrent(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen {
		return false
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = domain.PlaybackIdle
	p.sourceID = ""
	return true
}

// completed handles natural end of playback.
func (p *audioPipeline) completed(gen uint64) {
	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return
	}
	sourceID := p.sourceID
	p.state = domain.PlaybackIdle
	p.sourceID = ""
	p.voice = nil
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	cb := p.onComplete
	p.mu.Unlock()

	if cb != nil {
		cb(sourceID)
	}
}

func (p *audioPipeline) State() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *audioPipeline) SourceID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sourceID
}

func (p *audioPipeline) SetOnComplete(fn func(sourceID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onComplete = fn
}

func (p *audioPipeline) Close() error {
	p.Stop()
	return p.output.Close()
}
