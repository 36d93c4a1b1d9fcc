// Package cli implements the machcost command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/config"
	applog "github.com/piwi3910/MachCost/internal/log"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
	"github.com/piwi3910/MachCost/internal/store"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type GlobalOptions struct {
	ConfigFile string
	LogLevel   string
	Output     string

	cfg    *config.Config
	logger *zap.Logger
	flush  func()
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Output: outputText,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, "Path to configuration file")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error); overrides the configuration")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format: text or json")
}

// Complete loads the configuration and installs the logger.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if o.LogLevel != "" {
		level = o.LogLevel
	}
	logger, flush, err := applog.Setup(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	o.cfg = cfg
	o.logger = logger
	o.flush = flush
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.Output != outputText && o.Output != outputJSON {
		return fmt.Errorf("unknown output format %q: use text or json", o.Output)
	}
	return nil
}

// Close flushes the logger.
func (o *GlobalOptions) Close() {
	if o.flush != nil {
		o.flush()
	}
}

// Store opens the configured key-value store.
func (o *GlobalOptions) Store(ctx context.Context) (store.Store, error) {
	s, err := store.New(ctx, store.Options{
		Backend:       o.cfg.Store.Backend,
		Path:          o.cfg.Store.Path,
		RedisAddr:     o.cfg.Store.RedisAddr,
		RedisPassword: o.cfg.Store.RedisPassword,
		RedisDB:       o.cfg.Store.RedisDB,
		KeyPrefix:     o.cfg.Store.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", o.cfg.Store.Backend, err)
	}
	return s, nil
}

// AppConfig returns the saved preferences, or the defaults when none can be read.
func (o *GlobalOptions) AppConfig() model.AppConfig {
	appCfg, err := project.LoadAppConfig(o.cfg.AppConfigPath())
	if err != nil {
		o.logger.Warn("cannot read preferences, using defaults", zap.Error(err))
		return model.DefaultAppConfig()
	}
	return appCfg
}

// Catalog returns the built-in catalog with stored material prices and the
// configured finishing prices.
func (o *GlobalOptions) Catalog(ctx context.Context, s store.Store, appCfg model.AppConfig) model.Catalog {
	costs := project.LoadMaterialCosts(ctx, s)
	return appCfg.ApplyFinishingCosts(model.DefaultCatalog().WithCosts(costs))
}

func (o *GlobalOptions) wantJSON() bool {
	return o.Output == outputJSON
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
