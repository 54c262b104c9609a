package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/animalloo/animalloo"
	"github.com/animalloo/animalloo/gemini"
	animhttp "github.com/animalloo/animalloo/http"
	"github.com/animalloo/animalloo/search"
	animslog "github.com/animalloo/animalloo/slog"
	"github.com/animalloo/animalloo/sqlite"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	FacilityService animalloo.FacilityService
	SearchService   *search.Service
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("animalloo"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'animalloo --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ANIMALLOO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.FacilityService = animslog.NewLoggingFacilityService(sqlite.NewFacilityService(m.DB), logger)
	interpreter, err := newInterpreter(ctx, logger)
	if err != nil {
		return err
	}
	m.SearchService = search.NewService(animslog.NewLoggingInterpreter(interpreter, logger), m.FacilityService)

	deps.DB = m.DB
	deps.Facilities = m.FacilityService
	deps.Service = m.SearchService
	deps.Importer = sqlite.NewImporter(m.DB)
	deps.Metrics = animhttp.NewMetrics()

	return kongCtx.Run(deps)
}

// newInterpreter picks the query interpreter: Gemini when an API key is
// configured, otherwise the offline rule interpreter.
func newInterpreter(ctx context.Context, logger *slog.Logger) (animalloo.Interpreter, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Info("GEMINI_API_KEY not set, using rule-based query interpretation")
		return animalloo.NewRuleInterpreter(), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	model := os.Getenv("ANIMALLOO_MODEL")
	limiter := rate.NewLimiter(rate.Limit(geminiRequestsPerSecond), 1)
	return gemini.NewInterpreter(client, model, animalloo.Categories(), limiter), nil
}

// geminiRequestsPerSecond caps outbound interpretation calls. The free-tier
// Gemini quota is well above this; one query per request makes bursts rare.
const geminiRequestsPerSecond = 2.0

func defaultDBPath() string {
	if path := os.Getenv("ANIMALLOO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "animalloo.db"
	}
	dir := filepath.Join(home, ".animalloo")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "animalloo.db")
}

func logLevel() slog.Level {
	if os.Getenv("ANIMALLOO_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
