package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/urlcast"
)

// Run executes the stream command. Words are printed as they arrive.
func (c *StreamCmd) Run(deps *Dependencies) error {
	article, err := deps.Reader.Read(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcast.ErrorMessage(err))
		return err
	}

	var transcript urlcast.Transcript
	enc := json.NewEncoder(deps.Stdout)
	for event := range deps.Streamer.Stream(deps.Ctx, article.Content) {
		if c.JSON {
			if err := enc.Encode(event); err != nil {
				return err
			}
			continue
		}
		if event.Kind == urlcast.EventError {
			fmt.Fprintf(deps.Stderr, "\nerror: %s\n", event.Message)
			return urlcast.Errorf(urlcast.EINTERNAL, "%s", event.Message)
		}
		fmt.Fprint(deps.Stdout, transcript.Apply(event))
	}

	if !c.JSON {
		fmt.Fprintln(deps.Stdout)
	}
	return deps.Ctx.Err()
}
