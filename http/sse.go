package http

import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"github.com/fwojciec/urlcast"
)

// WriteEvents writes events as a server-sent event stream, one
// "data: <json>\n\n" frame per event, flushing after each frame.
// It returns the first write error, which usually means the client went
// away; returning stops the underlying sequence.
func WriteEvents(w http.ResponseWriter, events iter.Seq[urlcast.Event]) error {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	for e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Kind, err)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil {
			return err
		}
	}
	return nil
}
