package main

import (
	"fmt"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	article, err := deps.Reader.Read(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcast.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, article.Content)

	if c.OutputDir != "" {
		path, err := fs.NewWriter(c.OutputDir).WriteArticle(c.URL, article)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", urlcast.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved %s\n", path)
	}

	return nil
}
