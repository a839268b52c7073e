// Package openai implements urlcast.Synthesizer with the OpenAI speech API.
package openai

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/urlcast"
	goopenai "github.com/sashabaranov/go-openai"
)

// Default speech parameters.
const (
	DefaultModel = goopenai.TTSModel1HD
	DefaultVoice = goopenai.VoiceEcho
)

// Ensure Synthesizer implements urlcast.Synthesizer at compile time.
var _ urlcast.Synthesizer = (*Synthesizer)(nil)

// SpeechClient is the subset of *goopenai.Client used by Synthesizer.
type SpeechClient interface {
	CreateSpeech(ctx context.Context, request goopenai.CreateSpeechRequest) (goopenai.RawResponse, error)
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithModel selects the speech model.
func WithModel(model string) Option {
	return func(s *Synthesizer) {
		s.model = goopenai.SpeechModel(model)
	}
}

// WithVoice selects the speech voice.
func WithVoice(voice string) Option {
	return func(s *Synthesizer) {
		s.voice = goopenai.SpeechVoice(voice)
	}
}

// Synthesizer converts text chunks to MP3 audio.
type Synthesizer struct {
	client SpeechClient
	model  goopenai.SpeechModel
	voice  goopenai.SpeechVoice
}

// NewSynthesizer creates a Synthesizer. Pass goopenai.NewClient(apiKey) as
// the client in production.
func NewSynthesizer(client SpeechClient, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		client: client,
		model:  DefaultModel,
		voice:  DefaultVoice,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns MP3 audio for text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, urlcast.Errorf(urlcast.EINVALID, "speech text required")
	}
	if len(text) > urlcast.MaxSpeechChars {
		return nil, urlcast.Errorf(urlcast.EINVALID, "speech text exceeds %d characters", urlcast.MaxSpeechChars)
	}

	resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	if len(audio) == 0 {
		return nil, urlcast.Errorf(urlcast.EINTERNAL, "speech API returned no audio")
	}
	return audio, nil
}
