package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docask"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sources []*docask.DocSource
	Asker   docask.Asker
	Prober  docask.Prober

	// Session records the current session's queries.
	Session docask.HistoryService

	// History persists queries across sessions. Nil disables persistence.
	History docask.HistoryService

	Prompter  docask.Prompter
	SessionID string
	Style     docask.ListStyle
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Log debug output to stderr"`
	DB          string `name:"db" env:"DOCASK_DB" help:"SQLite database path (default ~/.docask/docask.db)"`
	SourcesFile string `name:"sources" type:"existingfile" help:"YAML file with extra or overriding documentation sources"`

	Embedder     string `env:"DOCASK_EMBEDDER" enum:"hash,gemini" default:"hash" help:"Embedding backend (hash, gemini)"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for the gemini embedder"`
	Cache        bool   `default:"true" negatable:"" help:"Memoize embeddings in memory"`
	PersistCache bool   `name:"persist-cache" help:"Keep memoized embeddings in the database across runs"`

	UserAgent string        `name:"user-agent" env:"DOCASK_USER_AGENT" help:"User-Agent header for page fetches"`
	Timeout   time.Duration `default:"30s" help:"Page fetch timeout"`
	Renderer  string        `enum:"http,browser,auto" default:"http" help:"Default page renderer (http, browser, auto)"`
	RPS       float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables pacing)"`
	Retries   int           `default:"0" help:"Fetch retries with exponential backoff"`
	Probe     bool          `help:"Probe the documentation root with HEAD before fetching"`
	Robots    bool          `help:"Treat roots disallowed by robots.txt as inaccessible (with --probe)"`

	Depth       int     `default:"3" help:"Maximum crawl depth"`
	TopK        int     `name:"top-k" short:"k" default:"0" help:"Number of fragments to return (default 5, 10 with --code)"`
	Threshold   float64 `default:"0" help:"Minimum similarity score (0 disables)"`
	MinLinkText int     `name:"min-link-text" default:"4" help:"Minimum anchor text length"`
	MinChars    int     `name:"min-chars" default:"20" help:"Drop fragments of this many characters or fewer"`
	Code        bool    `help:"Include code blocks as markdown fragments"`
	Narrow      string  `enum:"none,trafilatura,readability" default:"none" help:"Narrow pages to main content before ranking (none, trafilatura, readability)"`
	Sitemap     bool    `help:"Rank sitemap pages when the root has no links"`
	Style       string  `enum:"numbered,bullets" default:"numbered" help:"Answer list style (numbered, bullets)"`

	PersistHistory bool `name:"persist-history" help:"Save queries and answers to the database"`

	Ask     AskCmd     `cmd:"" help:"Ask a how-to question about one platform"`
	Compare CompareCmd `cmd:"" help:"Ask the same question about two platforms"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive question session"`
	Sources SourcesCmd `cmd:"" help:"List documentation sources"`
	History HistoryCmd `cmd:"" help:"Show saved query history"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Source string   `arg:"" help:"Platform name"`
	Query  []string `arg:"" help:"Question"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	First  string   `arg:"" help:"First platform name"`
	Second string   `arg:"" help:"Second platform name"`
	Query  []string `arg:"" help:"Question"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Accessible bool `help:"Use plain line prompts instead of the terminal UI"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	Check bool `help:"Check that every documentation root is accessible"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit   int    `short:"n" default:"20" help:"Number of entries to show (0 for all)"`
	Session string `help:"Only show entries of this session"`
	Export  string `type:"path" help:"Replace this directory with one markdown file per entry"`
}
