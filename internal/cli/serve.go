package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nithilan10/buildai/internal/cache"
	"github.com/Nithilan10/buildai/internal/config"
	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/narrative"
	"github.com/Nithilan10/buildai/internal/project"
	"github.com/Nithilan10/buildai/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tile calculator over HTTP",
		Long: `Serve the layout, wastage and report endpoints over HTTP.

Configuration is read from a YAML file (see --config) and the environment:
BUILDAI_ADDR, BUILDAI_REDIS_ADDR, OPENAI_API_KEY and BUILDAI_NARRATIVE_ENDPOINT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the configuration)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	rc, err := newReportCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer rc.Close()

	wastage := engine.OptionsFromSettings(cfg.Estimate.Settings)
	wastage.Advice = cfg.Advice()

	var provider narrative.Provider
	if cfg.NarrativeEnabled() {
		provider = narrative.NewOpenAIClient(narrative.OpenAIConfig{
			APIKey:     cfg.Narrative.APIKey,
			Endpoint:   cfg.Narrative.Endpoint,
			Model:      cfg.Narrative.Model,
			Timeout:    cfg.Narrative.Timeout,
			Attempts:   cfg.Narrative.Attempts,
			RetryDelay: cfg.Narrative.RetryDelay,
		})
		c.Logger.Info("narrative provider enabled", "model", cfg.Narrative.Model)
	}

	presets, _, err := project.LoadOrCreatePresets()
	if err != nil {
		c.Logger.Warn("using default presets", "err", err)
	}

	srv := server.New(server.Options{
		Estimator: narrative.NewEstimator(provider,
			narrative.WithWastageOptions(wastage),
			narrative.WithCache(rc, cfg.Cache.TTL),
			narrative.WithProviderDeadline(cfg.Narrative.Deadline),
			narrative.WithLogger(c.Logger),
		),
		Wastage:      &wastage,
		Presets:      presets,
		Logger:       c.Logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	return srv.ListenAndServe(ctx, cfg.Server)
}

func newReportCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}
