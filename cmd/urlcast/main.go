package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/etree"
	"github.com/fwojciec/urlcast/fs"
	"github.com/fwojciec/urlcast/gemini"
	"github.com/fwojciec/urlcast/goquery"
	ucshttp "github.com/fwojciec/urlcast/http"
	"github.com/fwojciec/urlcast/openai"
	"github.com/fwojciec/urlcast/publish"
	"github.com/fwojciec/urlcast/readability"
	ucslog "github.com/fwojciec/urlcast/slog"
	"github.com/fwojciec/urlcast/sqlite"
	"github.com/fwojciec/urlcast/stream"
	"github.com/fwojciec/urlcast/supabase"
	"github.com/fwojciec/urlcast/trafilatura"
	goopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database and configuration paths. Set before calling Run().
	DBPath     string
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Holds preview and intermediate audio of serve and convert.
	WorkDir *fs.WorkDir

	// Services for end-to-end testing.
	EpisodeService urlcast.EpisodeService
	Publisher      *publish.Publisher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.WorkDir != nil {
		if err := m.WorkDir.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("urlcast"),
		kong.Description("Turn web articles into text, word streams and podcast episodes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAML, m.ConfigPath),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'urlcast --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := NewLogger(stderr, cli.LogLevel, cli.LogFormat)
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set URLCAST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.EpisodeService = sqlite.NewEpisodeService(m.DB)
	deps.Episodes = m.EpisodeService

	fetcherOpts := []ucshttp.Option{
		ucshttp.WithTimeout(cli.Timeout),
		ucshttp.WithHostRateLimit(cli.HostRPS),
	}
	if cli.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, ucshttp.WithUserAgent(cli.UserAgent))
	}
	fetcher := ucslog.NewLoggingFetcher(ucshttp.NewFetcher(fetcherOpts...), logger)
	defer fetcher.Close()

	deps.Reader = &urlcast.PageReader{
		Fetcher:   fetcher,
		Extractor: ucslog.NewLoggingExtractor(newExtractor(cli.Engine, cli.MaxLength), logger),
	}

	delay := stream.DefaultDelay
	if cmd == "stream" {
		delay = cli.Stream.Delay
	}
	deps.Streamer = stream.New(stream.WithDelay(delay))

	if cmd == "serve" || cmd == "convert" {
		if err := m.openPublisher(ctx, cli, deps.Reader, logger, stderr); err != nil {
			return err
		}
		if cmd == "convert" {
			m.Publisher.Concurrency = cli.Convert.Concurrency
			m.Publisher.Progress = func(completed, total int) {
				fmt.Fprintf(stderr, "  synthesized %d/%d chunks\n", completed, total)
			}
		}
		deps.Publisher = m.Publisher
		deps.FeedStore = m.Publisher.Store
		deps.AudioDir = m.WorkDir.Path()
	}

	return kongCtx.Run(deps)
}

// openPublisher wires the speech, adaptation, storage and feed services.
func (m *Main) openPublisher(ctx context.Context, cli *CLI, reader urlcast.ArticleReader, logger *slog.Logger, stderr io.Writer) error {
	if cli.OpenAIKey == "" {
		fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
		return fmt.Errorf("OPENAI_API_KEY not set")
	}
	synthesizer := openai.NewSynthesizer(goopenai.NewClient(cli.OpenAIKey),
		openai.WithModel(cli.TTSModel),
		openai.WithVoice(cli.Voice),
	)

	var adapter urlcast.Adapter
	if cli.GeminiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		adapter = ucslog.NewLoggingAdapter(
			gemini.NewAdapter(client.Models, gemini.WithModel(cli.GeminiModel), gemini.WithLogger(logger)),
			logger,
		)
	}

	store, feedURL, err := m.openStore(cli, stderr)
	if err != nil {
		return err
	}

	workDir, err := fs.NewWorkDir(os.TempDir())
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	m.WorkDir = workDir

	channel := urlcast.DefaultChannel()
	channel.Link = feedURL
	if cli.FeedTitle != "" {
		channel.Title = cli.FeedTitle
	}
	if cli.FeedAuthor != "" {
		channel.Author = cli.FeedAuthor
	}

	m.Publisher = &publish.Publisher{
		Reader:      reader,
		Adapter:     adapter,
		Synthesizer: ucslog.NewLoggingSynthesizer(synthesizer, logger),
		Episodes:    m.EpisodeService,
		Store:       ucslog.NewLoggingObjectStore(store, logger),
		Feed:        etree.NewFeedRenderer(),
		WorkDir:     workDir,
		Channel:     channel,
		Logger:      logger,
	}
	return nil
}

// openStore returns the Supabase store when configured and a local
// directory store otherwise, along with the public feed URL.
func (m *Main) openStore(cli *CLI, stderr io.Writer) (urlcast.ObjectStore, string, error) {
	if cli.SupabaseURL != "" {
		store, err := supabase.Open(supabase.Config{
			URL:       cli.SupabaseURL,
			Key:       cli.SupabaseKey,
			Bucket:    cli.Bucket,
			CDNDomain: cli.CDNDomain,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check SUPABASE_URL and SUPABASE_KEY")
			return nil, "", fmt.Errorf("failed to open Supabase storage: %w", err)
		}
		return store, store.URL(urlcast.FeedKey), nil
	}

	dir := cli.StoreDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(m.DBPath), "files")
	}
	store := fs.NewStore(dir, cli.BaseURL)
	return store, store.URL(urlcast.FeedKey), nil
}

func newExtractor(engine string, maxLength int) urlcast.Extractor {
	switch engine {
	case "readability":
		return readability.NewExtractor(maxLength)
	case "trafilatura":
		return trafilatura.NewExtractor(maxLength)
	default:
		return goquery.NewExtractor(goquery.WithMaxLength(maxLength))
	}
}
