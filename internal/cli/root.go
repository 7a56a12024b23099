// Package cli implements the solrdex command line.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdex"
	"github.com/kailas-cloud/solrdex/internal/config"
	"github.com/kailas-cloud/solrdex/internal/logger"
)

// RootOptions holds global flags and the state built from them.
type RootOptions struct {
	ConfigPath string
	Env        string
	URL        string
	Verbose    bool
	Format     string // "yaml" | "json"

	cfg    config.Config
	client *solrdex.Client
	log    *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"yaml", "json"}

// NewRootCommand creates the root command of the solrdex CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "solrdex",
		Short: "solrdex - search server client",
		Long: `Query, index and maintain a Solr-compatible search core
over its XML select and update protocol.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default config/<env>.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Env, "env", config.GetEnv(), "environment (local|dev|docker|prod|test)")
	cmd.PersistentFlags().StringVar(&opts.URL, "url", "", "core url, overrides solr.url")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "yaml", "output format (yaml|json)")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewCommitCommand(opts))
	cmd.AddCommand(NewOptimizeCommand(opts))
	cmd.AddCommand(NewPingCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// setup loads configuration and builds the logger and client shared by subcommands.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return usageError("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return WrapExitError(ExitUsage, "load config", err)
	}
	o.cfg = cfg

	level := cfg.Logging.Level
	if o.Verbose {
		level = "debug"
	}
	l, err := logger.NewLogger(o.Env, level)
	if err != nil {
		return WrapExitError(ExitUsage, "create logger", err)
	}
	o.log = l

	clientOpts := []solrdex.Option{
		solrdex.WithURL(cfg.Solr.URL),
		solrdex.WithTimeout(cfg.Solr.Timeout()),
		solrdex.WithZap(l),
	}
	if cfg.Solr.Username != "" {
		clientOpts = append(clientOpts, solrdex.WithBasicAuth(cfg.Solr.Username, cfg.Solr.Password))
	}
	client, err := solrdex.New(clientOpts...)
	if err != nil {
		return WrapExitError(ExitUsage, "create client", err)
	}
	o.client = client

	// One request id per invocation ties the transport log lines together.
	requestID := uuid.NewString()
	ctx := logger.ContextWithRequestID(cmd.Context(), requestID)
	ctx = logger.ContextWithLogger(ctx, l.With(zap.String("request_id", requestID)))
	cmd.SetContext(ctx)

	l.Debug("client ready",
		zap.String("command", cmd.Name()),
		zap.String("env", o.Env),
		zap.String("url", cfg.Solr.URL),
	)
	return nil
}

func (o *RootOptions) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.LoadFile(o.ConfigPath)
	} else {
		cfg, err = config.Load(o.Env)
	}
	if err != nil {
		return config.Config{}, err
	}
	if o.URL != "" {
		cfg.Solr.URL = o.URL
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid --url: %w", err)
		}
	}
	return cfg, nil
}

// remoteError maps an SDK failure to an exit error. Rejected input is a usage error.
func remoteError(op string, err error) error {
	if errors.Is(err, solrdex.ErrInvalidQuery) {
		return WrapExitError(ExitUsage, op, err)
	}
	return WrapExitError(ExitFailure, op, err)
}
