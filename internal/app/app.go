package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/MrSnakeDoc/sourcepage/internal/catalog"
	"github.com/MrSnakeDoc/sourcepage/internal/config"
	"github.com/MrSnakeDoc/sourcepage/internal/httpserver"
	"github.com/MrSnakeDoc/sourcepage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sourcepage/internal/logger"
	"github.com/MrSnakeDoc/sourcepage/internal/scheduler"
	"github.com/MrSnakeDoc/sourcepage/internal/site"
	"github.com/MrSnakeDoc/sourcepage/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	catalog *catalog.Catalog
	stdout  io.Writer
	stderr  io.Writer
	exit    func(int)
}

func New() *App {
	cfg := config.Load()
	return NewWithConfig(cfg, logger.New(cfg.LogLevel, cfg.PrettyLog))
}

// NewWithConfig builds an App from an explicit config and logger.
func NewWithConfig(cfg *config.Config, log logger.Logger) *App {
	return &App{
		cfg:     cfg,
		logger:  log,
		catalog: catalog.Default(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// Run parses args and executes the selected command. Errors are logged
// before being returned.
func (a *App) Run(args []string) error {
	defer func() {
		_ = a.logger.Sync()
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sourcepage"),
		kong.Description("Render categorised link lists into a single static page."),
		kong.UsageOnError(),
		kong.Writers(a.stdout, a.stderr),
		kong.Exit(a.exit),
		kong.Vars{
			"sources_dir": a.cfg.SourcesDir,
			"output_file": a.cfg.OutputFile,
			"listen_port": a.cfg.ListenPort,
			"version":     version.String(),
		},
		kong.Bind(a),
	)
	if err != nil {
		return fmt.Errorf("failed to build command line parser: %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		a.logger.Error("❌ invalid arguments", logger.Error(err))
		return err
	}

	a.cfg.SourcesDir = cli.Sources
	a.cfg.OutputFile = cli.Output

	if err := kctx.Run(); err != nil {
		a.logger.Error("❌ sourcepage failed", logger.Error(err))
		return err
	}
	return nil
}

func (a *App) newBuilder() *site.Builder {
	return site.NewBuilder(a.catalog, a.cfg.SourcesDir, a.cfg.OutputFile, a.logger)
}

// Build renders the page once.
func (a *App) Build() (site.Report, error) {
	return a.newBuilder().Build()
}

// Serve builds the page, then serves it on listen and rebuilds on source
// changes until ctx is cancelled.
func (a *App) Serve(ctx context.Context, listen string) error {
	a.logger.Infof("🚀 Starting %s", version.String())

	builder := a.newBuilder()

	// Create manual rebuild trigger channel
	rebuildTrigger := make(chan struct{}, 1)

	rebuilder := scheduler.NewRebuilder(builder, a.logger, a.cfg.RebuildDebounce, rebuildTrigger)
	if err := rebuilder.Start(ctx); err != nil {
		return fmt.Errorf("failed to start rebuilder: %w", err)
	}

	d := deps.Deps{
		Logger:        a.logger,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		ReloadCIDRS:   a.cfg.ReloadCIDRS,
		TrustProxy:    a.cfg.TrustProxy,
		SiteDir:       filepath.Dir(builder.Output()),
		IndexFile:     filepath.Base(builder.Output()),
		Builds:        rebuilder,
		ReloadTrigger: rebuildTrigger,
	}

	server := httpserver.New(listen, a.logger, d)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	rebuilder.Stop()
	<-rebuilder.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Preview stopped cleanly")
	return nil
}

// ListCategories writes the categories in page order.
func (a *App) ListCategories(w io.Writer) error {
	for i, cat := range a.catalog.Categories() {
		if _, err := fmt.Fprintf(w, "%d. %-20s %-26s %s\n", i+1, cat.Key, cat.Title, cat.Class); err != nil {
			return err
		}
	}
	return nil
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
