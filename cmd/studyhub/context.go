package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hpn/studyhub/internal/adapter"
	"github.com/hpn/studyhub/internal/cache"
	"github.com/hpn/studyhub/internal/config"
	"github.com/hpn/studyhub/internal/dispatch"
	"github.com/hpn/studyhub/internal/metrics"
	"github.com/hpn/studyhub/internal/security"
	"github.com/hpn/studyhub/internal/study"
)

// errReported marks failures already printed to the user.
var errReported = errors.New("failure reported")

type commandContext struct {
	flags *rootFlags
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// app is the wired object graph for one command invocation.
type app struct {
	cfg         *config.Configuration
	logger      *slog.Logger
	registry    *prometheus.Registry
	dispatcher  *dispatch.Dispatcher
	service     *study.Service
	cache       *cache.FlashCache
	metricsPath string
}

// loadConfig reads configuration and applies flag overrides.
func (c *commandContext) loadConfig() (*config.Configuration, error) {
	var envFiles []string
	if f := strings.TrimSpace(c.flags.envFile); f != "" {
		envFiles = append(envFiles, f)
	}

	cfg, err := config.Load(config.Options{
		ConfigPath: strings.TrimSpace(c.flags.configPath),
		EnvFiles:   envFiles,
	})
	if err != nil {
		return nil, err
	}

	if b := strings.TrimSpace(c.flags.backend); b != "" {
		cfg.Generator.Backend = adapter.Backend(b)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if c.flags.metricsFile != "" {
		cfg.Metrics.TextfilePath = c.flags.metricsFile
	}

	return cfg, nil
}

// withApp builds the app, runs fn and always releases the app afterwards.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app) error) (err error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(a)
}

func newApp(cfg *config.Configuration, logOut io.Writer) (*app, error) {
	pool := cfg.CredentialPool()

	secrets := make([]string, 0, pool.Len())
	for _, cred := range pool.Available() {
		secrets = append(secrets, cred.Secret)
	}
	logger := setupLogger(cfg.Logging, logOut, secrets)

	factory, err := adapter.NewFactory(cfg.Generator.Backend, cfg.Generator.BaseURL)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	dispatcher := dispatch.New(
		pool,
		cfg.ModelRoster(),
		factory,
		dispatch.WithSettings(cfg.DispatchSettings()),
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(metrics.NewDispatchMetrics(registry)),
	)

	resultCache := cache.New(
		cache.WithTTL(cfg.CacheTTL()),
		cache.WithLogger(logger),
	)

	service := study.NewService(
		dispatcher,
		study.WithCache(resultCache),
		study.WithLogger(logger),
		study.WithContextChars(cfg.Study.ContextChars),
	)

	logger.Debug("studyhub wired",
		slog.String("backend", string(cfg.Generator.Backend)),
		slog.Int("credentials", pool.Len()),
		slog.Int("models", cfg.ModelRoster().Len()),
	)

	return &app{
		cfg:         cfg,
		logger:      logger,
		registry:    registry,
		dispatcher:  dispatcher,
		service:     service,
		cache:       resultCache,
		metricsPath: cfg.Metrics.TextfilePath,
	}, nil
}

func (a *app) close() error {
	a.cache.Close()
	if a.metricsPath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsPath, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// setupLogger creates a structured logger whose output never carries secrets.
func setupLogger(cfg config.LoggingConfig, w io.Writer, secrets []string) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(security.NewRedactedHandler(handler, secrets...))
}

// loadDocument reads the --file document. An empty path yields an empty document.
func (c *commandContext) loadDocument(cmd *cobra.Command) (study.Document, error) {
	path := strings.TrimSpace(c.flags.file)
	switch path {
	case "":
		return study.Document{}, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return study.Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return study.Document{Name: "stdin", Text: strings.TrimSpace(string(data))}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return study.Document{}, fmt.Errorf("read document: %w", err)
	}
	return study.Document{Name: filepath.Base(path), Text: strings.TrimSpace(string(data))}, nil
}

// requireDocument is loadDocument for tools that cannot run without text.
func (c *commandContext) requireDocument(cmd *cobra.Command) (study.Document, error) {
	doc, err := c.loadDocument(cmd)
	if err != nil {
		return doc, err
	}
	if doc.Empty() {
		return doc, fmt.Errorf("%w: pass --file <path>", study.ErrNoDocument)
	}
	return doc, nil
}

// commandCtx returns the command's context, never nil.
func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
