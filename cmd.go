package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/soocke/glyphpad/app"
	"github.com/soocke/glyphpad/config"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/headless"
)

// options are the command-line overrides shared by every command.
type options struct {
	configPath string
	endpoint   string
	model      string
	image      string
	debug      bool
	logLevel   string
	logFormat  string
}

// load reads the config file and applies flag overrides that were set.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	flags := cmd.Flags()
	cfg, err := config.Load(path)
	// A bad endpoint in the file is fine when the flag replaces it.
	if err != nil && !(errors.Is(err, config.ErrInvalidEndpoint) && flags.Changed("endpoint")) {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if flags.Changed("model") {
		cfg.DefaultModel = o.model
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if cfg.Debug && !flags.Changed("log-level") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o.configPath = path
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "glyphpad",
		Short:         "Draw or upload a character and classify it with a remote model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			logger := NewLogger(os.Stdout, parseLevel(cfg.LogLevel), cfg.LogFormat)
			c, err := app.BuildContainer(cfg, o.configPath, logger)
			if err != nil {
				return err
			}
			logger.Info("starting", "endpoint", cfg.Endpoint, "model", cfg.DefaultModel, "config", o.configPath)
			app.NewApp("Glyphpad", c).Start(o.image)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file, .json/.toml/.yaml (default "+config.DefaultPath()+")")
	pf.StringVar(&o.endpoint, "endpoint", config.DefaultEndpoint, "classifier service base URL")
	pf.StringVar(&o.model, "model", string(predict.DefaultModel), "model: cnn, resnet50 or densenet121")
	pf.BoolVar(&o.debug, "debug", false, "verbose logging and runtime metrics")
	pf.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&o.logFormat, "log-format", "json", "json or text")
	root.Flags().StringVar(&o.image, "image", "", "preload an image file into the upload slot")

	root.AddCommand(predictCmd(o), healthCmd(o))
	return root
}

func predictCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "predict <file>",
		Short: "Classify an image file without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := o.runner(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, err = r.Predict(ctx, args[0], predict.ParseModelChoice(cfg.DefaultModel), cmd.OutOrStdout())
			return err
		},
	}
}

func healthCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show whether the classifier service and its models are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := o.runner(cmd)
			if err != nil {
				return err
			}
			_, err = r.Health(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}

// runner builds a headless runner; logs go to stderr so stdout stays clean.
func (o *options) runner(cmd *cobra.Command) (*headless.Runner, *config.Config, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := NewLogger(cmd.ErrOrStderr(), parseLevel(cfg.LogLevel), cfg.LogFormat)
	r, err := headless.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return r, cfg, nil
}

// execute runs the root command and reports errors on stderr.
func execute(ctx context.Context) int {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "glyphpad:", err)
		slog.Debug("command failed", "error", err)
		return 1
	}
	return 0
}
