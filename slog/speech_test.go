package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/mock"
	ucslog "github.com/fwojciec/urlcast/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	t.Run("logs text and audio sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Synthesizer{
			SynthesizeFn: func(_ context.Context, _ string) ([]byte, error) {
				return []byte("mp3data"), nil
			},
		}

		audio, err := ucslog.NewLoggingSynthesizer(inner, logger).Synthesize(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "mp3data", string(audio))
		output := buf.String()
		assert.Contains(t, output, "msg=synthesize")
		assert.Contains(t, output, "chars=5")
		assert.Contains(t, output, "bytes=7")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Synthesizer{
			SynthesizeFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, errors.New("rate limited")
			},
		}

		_, err := ucslog.NewLoggingSynthesizer(inner, logger).Synthesize(context.Background(), "hello")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"rate limited\"")
	})
}

func TestLoggingAdapter_Adapt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Adapter{
		AdaptFn: func(_ context.Context, _ string) (*urlcast.Adaptation, error) {
			return &urlcast.Adaptation{Revised: "abc"}, nil
		},
	}

	got, err := ucslog.NewLoggingAdapter(inner, logger).Adapt(context.Background(), "abcdef")

	require.NoError(t, err)
	assert.Equal(t, "abc", got.Revised)
	output := buf.String()
	assert.Contains(t, output, "msg=adapt")
	assert.Contains(t, output, "chars=6")
	assert.Contains(t, output, "revised_chars=3")
}
