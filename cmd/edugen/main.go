// EduGen AI backend - entry point
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edugenhq/edugen-server/internal/api"
	"github.com/edugenhq/edugen-server/internal/domain/audit"
	"github.com/edugenhq/edugen-server/internal/domain/chat"
	"github.com/edugenhq/edugen-server/internal/domain/document"
	"github.com/edugenhq/edugen-server/internal/domain/quiz"
	"github.com/edugenhq/edugen-server/internal/infra/config"
	"github.com/edugenhq/edugen-server/internal/infra/eventbus"
	"github.com/edugenhq/edugen-server/internal/infra/llm"
	"github.com/edugenhq/edugen-server/internal/infra/sqlite"
	"github.com/edugenhq/edugen-server/internal/observability"
	"github.com/edugenhq/edugen-server/internal/server"
	"github.com/edugenhq/edugen-server/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("edugen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if err := serve(); err != nil {
		observability.Logger().Error("server exited", "error", err)
		return 1
	}
	return 0
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close() //nolint:errcheck
		return err
	}

	bus := eventbus.New()
	go audit.NewRecorder(db).Start(ctx, bus)

	gemini := llm.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey)
	router := llm.NewProviderRouter(map[string]llm.Provider{"gemini": gemini}, "gemini")
	provider, err := router.Route(ctx)
	if err != nil {
		db.Close() //nolint:errcheck
		return err
	}
	client := llm.NewResilientClient(provider, llm.RetryPolicy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		JitterMax:   cfg.RetryJitterMax,
	})

	documents := document.NewService(cfg.ParserURL)
	classifier := document.NewClassifier(client)
	chatSvc := chat.NewService(client, documents, classifier, bus)
	quizSvc := quiz.NewService(client, bus)

	handler := api.NewRouter(cfg, api.Services{
		Chat:      chatSvc,
		Quiz:      quizSvc,
		Documents: documents,
	})

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Host
	srvCfg.Port = cfg.Port
	srv := server.New(handler, db, srvCfg)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printHelp(out io.Writer) {
	helpText := `EduGen AI - learning assistant backend

Usage:
  edugen [options]

Options:
  --version    Show version information
  --help       Show this help message

Environment:
  GEMINI_API_KEY    API key for the hosted model (required)
  HOST, PORT        Listen address (default 0.0.0.0:10000)
  EDUGEN_CONFIG     Optional YAML config file
  PARSER_URL        PDF parse sidecar; empty disables PDF uploads
  DB_PATH           Usage-log SQLite database (default edugen.db)

Examples:
  edugen --version
  GEMINI_API_KEY=... edugen`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
