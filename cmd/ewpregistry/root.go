package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/internal/config"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/internal/logging"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/admission"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/catalogue"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/schema"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/source"
)

// cli is the state shared by all subcommands of one invocation.
type cli struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *zap.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:               "ewpregistry",
		Short:             "Admit EWP discovery manifests into the registry",
		Version:           fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.init,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "",
		"config file (default: ~/.config/ewpregistry/ewpregistry.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("catalogue", "", "catalogue snapshot consulted by the constraints")
	root.PersistentFlags().String("sources", "", "manifest sources file")
	_ = c.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("catalogue.file", root.PersistentFlags().Lookup("catalogue"))
	_ = c.v.BindPFlag("sources.file", root.PersistentFlags().Lookup("sources"))

	root.AddCommand(
		newAdmitCmd(c),
		newValidateCmd(c),
		newNamespacesCmd(c),
		newSourcesCmd(c),
		newVersionCmd(c),
	)
	return root
}

// init reads the configuration and sets up logging.
func (c *cli) init(cmd *cobra.Command, _ []string) error {
	config.SetDefaults(c.v)
	config.BindEnv(c.v)

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(filepath.Join(home, ".config", "ewpregistry"))
		}
		c.v.AddConfigPath(".")
		c.v.SetConfigName("ewpregistry")
		c.v.SetConfigType("yaml")
	}
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if used := c.v.ConfigFileUsed(); used != "" {
		c.logger.Debug("loaded config", zap.String("file", used))
	}
	return nil
}

func (c *cli) builder() (*docbuilder.Builder, error) {
	s, err := schema.Compile(schema.Bundle(), schema.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	return docbuilder.New(s, docbuilder.WithLogger(c.logger)), nil
}

func (c *cli) sources() (*source.Registry, error) {
	if c.cfg.Sources.File == "" {
		return source.NewRegistry()
	}
	return source.LoadFile(c.cfg.Sources.File)
}

func (c *cli) catalogue(b *docbuilder.Builder) (catalogue.Query, error) {
	var q catalogue.Query = catalogue.Empty()
	if c.cfg.Catalogue.File != "" {
		snap, err := catalogue.LoadFile(b, c.cfg.Catalogue.File)
		if err != nil {
			return nil, err
		}
		c.logger.Info("loaded catalogue", zap.String("file", c.cfg.Catalogue.File), zap.Int("hosts", snap.HostCount()))
		q = snap
	}
	if c.cfg.Catalogue.CacheTTL > 0 {
		q = catalogue.NewCached(q, c.cfg.Catalogue.CacheTTL, catalogue.WithLogger(c.logger))
	}
	return q, nil
}

func (c *cli) pipeline() (*admission.Pipeline, error) {
	b, err := c.builder()
	if err != nil {
		return nil, err
	}
	q, err := c.catalogue(b)
	if err != nil {
		return nil, err
	}
	reg, err := c.sources()
	if err != nil {
		return nil, err
	}
	return admission.New(b,
		admission.WithCatalogue(q),
		admission.WithSources(reg),
		admission.WithSettings(c.cfg.Settings()),
		admission.WithLogger(c.logger),
	), nil
}
