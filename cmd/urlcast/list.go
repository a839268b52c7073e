package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/urlcast"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	episodes, err := deps.Episodes.FindEpisodes(deps.Ctx, urlcast.EpisodeFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcast.ErrorMessage(err))
		return err
	}

	if len(episodes) == 0 {
		fmt.Fprintln(deps.Stdout, "No episodes found. Use 'urlcast convert' to create one.")
		return nil
	}

	for _, e := range episodes {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			e.ID, e.PublishedAt.UTC().Format(time.DateTime), e.Title, e.SourceURL)
	}

	return nil
}
