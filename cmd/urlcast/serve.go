package main

import (
	"fmt"

	ucshttp "github.com/fwojciec/urlcast/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := ucshttp.NewServer()
	s.Addr = c.Addr
	s.AllowedOrigins = c.Origins
	s.AudioDir = deps.AudioDir
	s.Logger = deps.Logger
	s.ArticleReader = deps.Reader
	s.Streamer = deps.Streamer
	s.Publisher = deps.Publisher
	s.FeedStore = deps.FeedStore

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")
	return s.Close()
}
