package main

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/RNRequiem/Contabilidad/internal/expense"
	"github.com/RNRequiem/Contabilidad/internal/extraction"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// A local .env is convenient in development; absence is fine.
	_ = godotenv.Load()

	fs := ff.NewFlagSet("viaticos")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "", "Database file path (empty keeps expenses in memory for the session)")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("VIATICOS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize the record store
	var store expense.Store
	if *dbPath != "" {
		slog.Info("Initializing database...", "path", *dbPath)
		boltStore, err := expense.NewBoltStore(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		store = boltStore
	} else {
		slog.Info("Using in-memory expense store")
		store = expense.NewMemoryStore()
	}
	defer store.Close()

	// Initialize the extractor. A missing key must not keep the server from
	// starting: extractions then surface the missing-credential failure.
	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	var extractor extraction.Extractor
	if apiKey == "" {
		slog.Warn("Gemini API key is not configured, receipt extraction will be unavailable. Set --gemini-key or GEMINI_API_KEY")
		extractor = extraction.Unconfigured()
	} else {
		slog.Info("Initializing Gemini extractor...", "model", *geminiModel)
		g, err := extraction.NewGemini(apiKey, *geminiModel)
		if err != nil {
			if errors.Is(err, extraction.ErrMissingCredential) {
				slog.Warn("Gemini API key is not configured, receipt extraction will be unavailable")
				extractor = extraction.Unconfigured()
			} else {
				slog.Error("Failed to initialize Gemini", "error", err)
				os.Exit(1)
			}
		} else {
			extractor = g
		}
	}
	defer extractor.Close()

	service := expense.NewService(store, extractor)

	basicAuth := expense.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := expense.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
