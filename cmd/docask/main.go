package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/crawl"
	"github.com/fwojciec/docask/gemini"
	"github.com/fwojciec/docask/goquery"
	"github.com/fwojciec/docask/hashembed"
	"github.com/fwojciec/docask/htmltomarkdown"
	dochttp "github.com/fwojciec/docask/http"
	"github.com/fwojciec/docask/huh"
	"github.com/fwojciec/docask/lru"
	"github.com/fwojciec/docask/memory"
	"github.com/fwojciec/docask/rank"
	"github.com/fwojciec/docask/readability"
	"github.com/fwojciec/docask/rod"
	dslog "github.com/fwojciec/docask/slog"
	"github.com/fwojciec/docask/sqlite"
	"github.com/fwojciec/docask/trafilatura"
	"github.com/google/uuid"
)

// probeTimeout bounds the HEAD request used to check a documentation root.
const probeTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, Run uses them instead of
	// wiring its own.
	Asker    docask.Asker
	Prober   docask.Prober
	Prompter docask.Prompter

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
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
		kong.Name("docask"),
		kong.Description("Answer how-to questions from CDP documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docask --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)

	extra, err := LoadSources(cli.SourcesFile)
	if err != nil {
		return err
	}
	deps.Sources = docask.MergeSources(docask.DefaultSources(), extra)
	deps.Style = docask.ListStyle(cli.Style)
	deps.SessionID = uuid.NewString()
	deps.Session = memory.NewHistoryService(0)

	// Only history requires the database; other commands warn and run
	// without persistence.
	asks := cmd == "ask" || cmd == "compare" || cmd == "chat"
	switch {
	case cmd == "history":
		if err := m.openDB(cli.DB); err != nil {
			fmt.Fprintln(stderr, "Hint: Set DOCASK_DB to use a different database path")
			return err
		}
	case asks && (cli.PersistHistory || (cli.Cache && cli.PersistCache)):
		if err := m.openDB(cli.DB); err != nil {
			logger.Warn("continuing without persistence", "err", err)
		}
	}
	if m.DB != nil && (cmd == "history" || cli.PersistHistory) {
		deps.History = sqlite.NewHistoryService(m.DB)
	}

	deps.Prober = m.Prober
	if deps.Prober == nil {
		deps.Prober = newProber(cli, logger)
	}

	if asks {
		deps.Asker = m.Asker
		if deps.Asker == nil {
			asker, err := m.newController(cli, deps, logger)
			if err != nil {
				return err
			}
			deps.Asker = asker
		}
	}

	if cmd == "chat" {
		deps.Prompter = m.Prompter
		if deps.Prompter == nil {
			p := huh.NewPrompter()
			p.Accessible = cli.Chat.Accessible
			deps.Prompter = p
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	if path == "" {
		path = m.DBPath
	}
	if dir := filepath.Dir(path); path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newController wires the crawl controller answering ask, compare and chat.
func (m *Main) newController(cli *CLI, deps *Dependencies, logger *slog.Logger) (*crawl.Controller, error) {
	embedder, err := m.newEmbedder(cli, deps.Stderr, logger)
	if err != nil {
		return nil, err
	}
	ranker := rank.NewRanker(embedder)
	ranker.K = topK(cli.TopK, cli.Code)
	ranker.Threshold = cli.Threshold
	ranker.MinChars = cli.MinChars

	var httpFetcher docask.Fetcher = dochttp.NewFetcher(httpOptions(cli)...)
	var browser docask.Fetcher = rod.NewFetcher(rodOptions(cli)...)
	var detector docask.FrameworkDetector = goquery.NewDetector()
	var sitemaps docask.SitemapService = dochttp.NewSitemapService(nil)
	if cli.Verbose {
		httpFetcher = dslog.NewLoggingFetcher(httpFetcher, logger.With("renderer", docask.RendererHTTP))
		browser = dslog.NewLoggingFetcher(browser, logger.With("renderer", docask.RendererBrowser))
		detector = dslog.NewLoggingDetector(detector, logger)
		sitemaps = dslog.NewLoggingSitemapService(sitemaps, logger)
	}
	auto := crawl.NewAutoFetcher(httpFetcher, browser, detector, trafilatura.NewExtractor())
	auto.Logger = logger
	m.closers = append(m.closers, auto)

	renderers := map[docask.Renderer]docask.Fetcher{
		docask.RendererHTTP:    httpFetcher,
		docask.RendererBrowser: browser,
		docask.RendererAuto:    auto,
	}

	fragments := goquery.NewFragmentExtractor()
	if cli.Code {
		fragments.IncludeCode = true
		fragments.IncludeScript = true
		fragments.Converter = htmltomarkdown.NewConverter()
	}

	c := &crawl.Controller{
		Sources:         deps.Sources,
		Fetcher:         renderers[docask.Renderer(cli.Renderer)],
		Renderers:       renderers,
		Links:           &goquery.LinkExtractor{MinTextLen: cli.MinLinkText},
		Fragments:       fragments,
		Extractor:       narrower(cli.Narrow),
		Ranker:          ranker,
		Sitemaps:        sitemaps,
		SitemapFallback: cli.Sitemap,
		MaxDepth:        cli.Depth,
		RetryDelays:     retryDelays(cli.Retries),
		Logger:          logger,
	}
	if cli.RPS > 0 {
		c.Limiter = crawl.NewDomainLimiter(cli.RPS)
	}
	if cli.Probe {
		c.Prober = deps.Prober
	}
	return c, nil
}

// newEmbedder builds the embedding backend, fronted by an in-memory cache
// that reads through to the database with --persist-cache.
func (m *Main) newEmbedder(cli *CLI, stderr io.Writer, logger *slog.Logger) (docask.Embedder, error) {
	var embedder docask.Embedder
	switch cli.Embedder {
	case "gemini":
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		apiKey := cli.GeminiAPIKey
		embedder = rank.NewLazyEmbedder(gemini.DefaultModel, func(ctx context.Context) (docask.Embedder, error) {
			client, err := gemini.NewClient(ctx, apiKey)
			if err != nil {
				return nil, err
			}
			return gemini.NewEmbedder(client), nil
		})
	default:
		embedder = hashembed.NewEmbedder()
	}

	if cli.Verbose {
		embedder = dslog.NewLoggingEmbedder(embedder, logger)
	}
	if !cli.Cache {
		return embedder, nil
	}

	var opts []lru.Option
	if m.DB != nil && cli.PersistCache {
		opts = append(opts, lru.WithBacking(sqlite.NewEmbeddingCache(m.DB)))
	}
	cache, err := lru.NewCache(lru.DefaultSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return rank.NewCachingEmbedder(embedder, cache), nil
}

func newProber(cli *CLI, logger *slog.Logger) docask.Prober {
	opts := []dochttp.ProberOption{
		dochttp.WithProbeTimeout(probeTimeout),
		dochttp.WithRobots(cli.Robots),
	}
	if cli.UserAgent != "" {
		opts = append(opts, dochttp.WithProbeUserAgent(cli.UserAgent))
	}
	var p docask.Prober = dochttp.NewProber(opts...)
	if cli.Verbose {
		p = dslog.NewLoggingProber(p, logger)
	}
	return p
}

func httpOptions(cli *CLI) []dochttp.Option {
	opts := []dochttp.Option{dochttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, dochttp.WithUserAgent(cli.UserAgent))
	}
	return opts
}

func rodOptions(cli *CLI) []rod.Option {
	opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(cli.UserAgent))
	}
	return opts
}

// narrower returns the main-content extractor selected by --narrow.
func narrower(name string) docask.Extractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	}
	return nil
}

// topK resolves --top-k: zero selects the default, doubled when code
// fragments are included.
func topK(k int, code bool) int {
	switch {
	case k > 0:
		return k
	case code:
		return 2 * rank.DefaultK
	}
	return rank.DefaultK
}

// retryDelays returns n doubling backoff delays, starting with the
// crawl defaults.
func retryDelays(n int) []time.Duration {
	delays := crawl.DefaultRetryDelays()
	for len(delays) < n {
		delays = append(delays, 2*delays[len(delays)-1])
	}
	return delays[:max(n, 0)]
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docask.db"
	}
	return filepath.Join(home, ".docask", "docask.db")
}
