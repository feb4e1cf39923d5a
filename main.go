package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kevin-rs/duckduckgo/internal/cli"
	"github.com/kevin-rs/duckduckgo/internal/config"
	"github.com/kevin-rs/duckduckgo/internal/search"
	"github.com/kevin-rs/duckduckgo/internal/styles"
	"github.com/kevin-rs/duckduckgo/internal/telemetry"
	"github.com/kevin-rs/duckduckgo/internal/useragents"
	"github.com/kevin-rs/duckduckgo/internal/utils/httpclient"
	"github.com/sirupsen/logrus"
	urfave "github.com/urfave/cli/v2"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	errQueryRequired = errors.New("query is required")
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the appropriate logrus level.
// Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.WarnLevel
	}

	switch strings.ToLower(strings.TrimSpace(logLevelStr)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// invocationHook stamps every log entry with the id of this run
type invocationHook struct {
	id string
}

func (h invocationHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h invocationHook) Fire(entry *logrus.Entry) error {
	entry.Data["invocation_id"] = h.id
	return nil
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		styles.Default().Error.Fprintln(os.Stderr, "Error: "+errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage is the text printed after "Error: ". A missing query and a
// bad user agent keep the wording users already know.
func errorMessage(err error) string {
	if errors.Is(err, errQueryRequired) {
		return "Query is required!"
	}
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Field == "user agent" {
		msg := "Invalid user agent selected!"
		if len(cfgErr.Suggestions) > 0 {
			msg += " Did you mean: " + strings.Join(cfgErr.Suggestions, ", ") + "?"
		}
		return msg
	}
	return err.Error()
}

func newApp(stdout, stderr io.Writer) *urfave.App {
	// -v is taken by --verbose
	urfave.VersionFlag = &urfave.BoolFlag{Name: "version", Usage: "print the version"}

	defaults := config.Default()

	return &urfave.App{
		Name:      "ddg",
		Usage:     "Search DuckDuckGo from the command line",
		UsageText: "ddg [options] <query...>",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "search query, positional words are used when empty", EnvVars: []string{"DDG_QUERY"}},
			&urfave.StringFlag{Name: "operators", Aliases: []string{"o"}, Usage: "search operators appended verbatim, e.g. site:github.com", EnvVars: []string{"DDG_OPERATORS"}},
			&urfave.BoolFlag{Name: "safe", Aliases: []string{"s"}, Usage: "enable safe search", EnvVars: []string{"DDG_SAFE"}},
			&urfave.StringFlag{Name: "format", Aliases: []string{"f"}, Value: defaults.Format, Usage: "instant answer format: list or detailed", EnvVars: []string{"DDG_FORMAT"}},
			&urfave.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: defaults.Limit, Usage: "maximum number of results, 0 for no limit", EnvVars: []string{"DDG_LIMIT"}},
			&urfave.StringFlag{Name: "user-agent", Aliases: []string{"u"}, Value: defaults.UserAgent, Usage: "user agent alias, see --list-user-agents", EnvVars: []string{"DDG_USER_AGENT"}},
			&urfave.BoolFlag{Name: "cookie", Aliases: []string{"c"}, Value: defaults.Cookies, Usage: "keep cookies between requests", EnvVars: []string{"DDG_COOKIE"}},
			&urfave.StringFlag{Name: "proxy", Aliases: []string{"p"}, Usage: "proxy URL (http, https or socks5)", EnvVars: []string{"DDG_PROXY"}},
			&urfave.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: defaults.Backend, Usage: "auto, lite, images or news", EnvVars: []string{"DDG_BACKEND"}},
			&urfave.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging to stderr"},
			&urfave.StringFlag{Name: "region", Aliases: []string{"r"}, Value: defaults.Region, Usage: "region code, e.g. us-en", EnvVars: []string{"DDG_REGION"}},
			&urfave.StringFlag{Name: "output", Value: defaults.Output, Usage: "text, json or markdown", EnvVars: []string{"DDG_OUTPUT"}},
			&urfave.StringFlag{Name: "language", Value: defaults.Language, Usage: "BCP 47 language for Accept-Language", EnvVars: []string{"DDG_LANGUAGE"}},
			&urfave.DurationFlag{Name: "timeout", Value: defaults.Timeout, Usage: "per-request timeout", EnvVars: []string{"DDG_TIMEOUT"}},
			&urfave.IntFlag{Name: "max-pages", Value: defaults.MaxPages, Usage: "page cap for image and news searches", EnvVars: []string{"DDG_MAX_PAGES"}},
			&urfave.BoolFlag{Name: "no-color", Usage: "disable coloured output", EnvVars: []string{"DDG_NO_COLOR"}},
			&urfave.BoolFlag{Name: "trace", Usage: "print OpenTelemetry spans to stderr", EnvVars: []string{"DDG_TRACE"}},
			&urfave.StringFlag{Name: "config", Usage: "config file (default: $DDG_CONFIG or ~/.config/ddg/config.yaml)"},
			&urfave.BoolFlag{Name: "list-user-agents", Usage: "print the user agent aliases and exit"},
		},
		Action: func(c *urfave.Context) error {
			return run(c, stdout, stderr)
		},
	}
}

func run(c *urfave.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, &cfg)

	if cfg.NoColor {
		styles.SetEnabled(false)
	}

	invocationID := telemetry.NewInvocationID()
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(parseLogLevel())
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.AddHook(invocationHook{id: invocationID})

	table := useragents.Default()
	palette := styles.Default()

	if c.Bool("list-user-agents") {
		runner := cli.NewRunner(logger, nil, stdout, cli.Options{Output: cli.OutputFormat(cfg.Output)})
		return runner.ListUserAgents(table)
	}

	query := strings.TrimSpace(c.String("query"))
	if query == "" {
		query = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}
	if query == "" {
		return errQueryRequired
	}

	if err := cfg.Validate(table); err != nil {
		return err
	}
	userAgent, err := cfg.UserAgentString(table)
	if err != nil {
		return err
	}
	acceptLanguage, err := cfg.AcceptLanguage()
	if err != nil {
		return err
	}

	shutdown, err := telemetry.InitTracer(logger, telemetry.Options{Enabled: cfg.Trace, Writer: stderr, Version: Version})
	if err != nil {
		logger.WithError(err).Warn("Tracing disabled")
	}
	defer func() {
		if err := shutdown(); err != nil {
			logger.WithError(err).Warn("Failed to flush traces")
		}
	}()

	client, err := httpclient.New(httpclient.Options{
		Timeout: cfg.Timeout,
		Proxy:   cfg.Proxy,
		Cookies: cfg.Cookies,
	}, logger)
	if err != nil {
		return err
	}

	browser := search.NewBrowser(client, logger, search.Options{
		UserAgent:      userAgent,
		AcceptLanguage: acceptLanguage,
		MaxPages:       cfg.MaxPages,
	})

	runner := cli.NewRunner(logger, browser, stdout, cli.Options{
		Backend: cfg.Backend,
		Format:  cfg.Format,
		Output:  cli.OutputFormat(cfg.Output),
		Origin:  browser.Endpoints().Origin(),
		Palette: palette,
	})

	ctx := telemetry.ContextWithInvocationID(c.Context, invocationID)
	return runner.Run(ctx, search.Request{
		Query:      query,
		Region:     cfg.Region,
		SafeSearch: cfg.SafeSearch,
		Limit:      cfg.Limit,
		Operators:  c.String("operators"),
	})
}

// applyFlags copies every flag set on the command line or through its
// environment variable over the file settings.
func applyFlags(c *urfave.Context, cfg *config.Config) {
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("proxy") {
		cfg.Proxy = c.String("proxy")
	}
	if c.IsSet("cookie") {
		cfg.Cookies = c.Bool("cookie")
	}
	if c.IsSet("region") {
		cfg.Region = c.String("region")
	}
	if c.IsSet("safe") {
		cfg.SafeSearch = c.Bool("safe")
	}
	if c.IsSet("limit") {
		cfg.Limit = c.Int("limit")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("language") {
		cfg.Language = c.String("language")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("no-color") {
		cfg.NoColor = c.Bool("no-color")
	}
	if c.IsSet("trace") {
		cfg.Trace = c.Bool("trace")
	}
}
