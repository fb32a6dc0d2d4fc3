package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coinbase/cb-ecc-go/pkg/ecc"
	"github.com/coinbase/cb-ecc-go/pkg/ecc/logging"
)

const envPrefix = "ECMATH"

type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "ecmath",
		Short:         "Elliptic-curve arithmetic on standard curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("curve", "P-256", "curve name")
	flags.String("coordinates", "", "coordinate system, empty for the curve default")
	flags.String("multiplier", "", "scalar multiplier, empty for the curve default")
	flags.Bool("verbose", false, "log debug records to stderr")
	for _, name := range []string{"curve", "coordinates", "multiplier", "verbose"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newCurvesCmd(),
		newMulCmd(c),
		newDecodeCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	if c.v.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "creating logger")
		}
		c.logger = l
	}
	return nil
}

// engineConfig merges flags, environment and config file.
func (c *cli) engineConfig() (ecc.Config, error) {
	var cfg ecc.Config
	if err := c.v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding configuration")
	}
	if c.logger != nil {
		cfg.Logger = logging.NewZap(c.logger)
	}
	return cfg, nil
}

func (c *cli) open() (*ecc.Engine, error) {
	cfg, err := c.engineConfig()
	if err != nil {
		return nil, err
	}
	eng, err := ecc.Open(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", cfg.Curve)
	}
	return eng, nil
}
