package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/urlcast"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Reader   urlcast.ArticleReader
	Streamer urlcast.Streamer
	Episodes urlcast.EpisodeService

	// Set for serve and convert only.
	Publisher urlcast.Publisher
	FeedStore urlcast.ObjectStore
	AudioDir  string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `name:"config" help:"YAML configuration file"`

	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log format (${enum})"`

	Engine    string        `enum:"goquery,readability,trafilatura" default:"goquery" help:"Content extraction engine (${enum})"`
	MaxLength int           `name:"max-length" default:"16000" help:"Content length budget in bytes"`
	UserAgent string        `name:"user-agent" help:"User-Agent sent when fetching pages"`
	Timeout   time.Duration `default:"10s" help:"Page fetch timeout"`
	HostRPS   float64       `name:"host-rps" default:"0" help:"Maximum page requests per second to one host; 0 disables the limit"`

	OpenAIKey string `name:"openai-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	TTSModel  string `name:"tts-model" default:"tts-1-hd" help:"OpenAI speech model"`
	Voice     string `default:"echo" help:"OpenAI voice"`

	GeminiKey   string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key; enables audio adaptation"`
	GeminiModel string `name:"gemini-model" default:"gemini-2.5-flash" help:"Gemini model used for adaptation"`

	SupabaseURL string `name:"supabase-url" env:"SUPABASE_URL" help:"Supabase project URL; enables Supabase storage"`
	SupabaseKey string `name:"supabase-key" env:"SUPABASE_KEY" help:"Supabase service key"`
	Bucket      string `default:"audio-files" help:"Supabase storage bucket"`
	CDNDomain   string `name:"cdn-domain" env:"CDN_DOMAIN" help:"Domain serving the bucket"`

	StoreDir string `name:"store-dir" env:"URLCAST_STORE_DIR" help:"Local directory for published files when Supabase is not configured" type:"path"`
	BaseURL  string `name:"base-url" default:"http://localhost:8000/files" help:"Public URL of --store-dir"`

	FeedTitle  string `name:"feed-title" help:"Podcast feed title"`
	FeedAuthor string `name:"feed-author" help:"Podcast feed author"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
	Extract ExtractCmd `cmd:"" help:"Extract the article of a page"`
	Stream  StreamCmd  `cmd:"" help:"Stream the article of a page word by word"`
	Convert ConvertCmd `cmd:"" help:"Convert a page into a podcast episode"`
	List    ListCmd    `cmd:"" help:"List published episodes"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string   `default:":8000" env:"URLCAST_ADDR" help:"Listen address"`
	Origins []string `name:"origin" default:"*" help:"Allowed CORS origins (repeatable)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL       string `arg:"" help:"Page URL"`
	OutputDir string `short:"o" name:"output-dir" help:"Also save the article as markdown under this directory" type:"path"`
}

// StreamCmd is the "stream" subcommand.
type StreamCmd struct {
	URL   string        `arg:"" help:"Page URL"`
	JSON  bool          `help:"Print raw events as JSON lines"`
	Delay time.Duration `default:"10ms" help:"Delay between words"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URL         string `arg:"" help:"Page URL"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent synthesis requests"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of episodes"`
}
