package main

import (
	"fmt"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/publish"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	pub, err := deps.Publisher.Publish(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcast.ErrorMessage(err))
		return err
	}

	if pub.Reused {
		fmt.Fprintf(deps.Stdout, "Content unchanged, reusing episode %q (%s)\n", pub.Episode.Title, pub.Episode.ID)
	} else {
		fmt.Fprintf(deps.Stdout, "Published episode %q (%s)\n", pub.Episode.Title, pub.Episode.ID)
	}
	fmt.Fprintf(deps.Stdout, "  audio: %s (%s)\n", pub.Episode.AudioURL, publish.FormatBytes(pub.Episode.AudioSize))
	fmt.Fprintf(deps.Stdout, "  feed:  %s\n", pub.FeedURL)

	return nil
}
