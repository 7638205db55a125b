package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"cadence/internal/acoustid"
	"cadence/internal/config"
	"cadence/internal/fingerprint"
	"cadence/internal/history"
	"cadence/internal/identify"
	"cadence/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// newIdentifier wires the fingerprinting client, the AcoustID client, a fresh
// submission registry, and the optional history store into an Identifier. The
// returned cleanup closes the history store when one was opened.
func (c *commandContext) newIdentifier(logger *slog.Logger) (*identify.Identifier, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	fingerprinter, err := fingerprint.New(cfg.FpcalcBinary(), cfg.Fpcalc.TimeoutSeconds)
	if err != nil {
		return nil, nil, err
	}

	client, err := acoustid.New(cfg.AcoustID.APIKey, cfg.AcoustID.BaseURL,
		acoustid.WithUserKey(cfg.AcoustID.UserKey),
		acoustid.WithTimeout(time.Duration(cfg.AcoustID.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []identify.Option{identify.WithLogger(logger)}
	cleanup := func() {}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, identify.WithHistory(store))
		cleanup = func() { _ = store.Close() }
	}

	identifier, err := identify.New(fingerprinter, client, nil, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return identifier, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
