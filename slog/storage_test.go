package slog_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/mock"
	ucslog "github.com/fwojciec/urlcast/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingObjectStore_Put(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var stored string
	inner := &mock.ObjectStore{
		PutFn: func(_ context.Context, key, _ string, r io.Reader) (string, error) {
			data, err := io.ReadAll(r)
			stored = string(data)
			return "https://cdn.example.com/" + key, err
		},
	}

	url, err := ucslog.NewLoggingObjectStore(inner, logger).
		Put(context.Background(), "feed.xml", "application/xml", strings.NewReader("<rss/>"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/feed.xml", url)
	assert.Equal(t, "<rss/>", stored)
	output := buf.String()
	assert.Contains(t, output, "msg=\"put object\"")
	assert.Contains(t, output, "key=feed.xml")
	assert.Contains(t, output, "content_type=application/xml")
	assert.Contains(t, output, "bytes=6")
	assert.Contains(t, output, "url=https://cdn.example.com/feed.xml")
}

func TestLoggingObjectStore_Get(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.ObjectStore{
		GetFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, urlcast.Errorf(urlcast.ENOTFOUND, "object not found")
		},
	}

	_, err := ucslog.NewLoggingObjectStore(inner, logger).Get(context.Background(), "feed.xml")

	assert.Equal(t, urlcast.ENOTFOUND, urlcast.ErrorCode(err))
	output := buf.String()
	assert.Contains(t, output, "msg=\"get object\"")
	assert.Contains(t, output, "message=object not found")
}
