package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envPrefix is prepended to every setting read from the environment, so
// --buffer-size may also be given as GORDY_BUFFER_SIZE.
const envPrefix = "GORDY"

// app holds what every subcommand shares once flags have been parsed.
type app struct {
	conf *viper.Viper
	log  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{conf: viper.New(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "gordy",
		Short: "Parse files with gordy grammars",
		Long: `
gordy parses files with the grammars that ship with the gordy parser toolkit.

Settings come from flags, then GORDY_ environment variables, then the file
named by --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	fs := cmd.PersistentFlags()
	fs.String("config", "", "configuration file, overridden by environment variables and flags")
	fs.BoolP("verbose", "v", false, "log at debug level")

	cmd.AddCommand(newINICmd(a))
	return cmd
}

// bindFlags makes every flag in the given sets readable through conf.
func bindFlags(conf *viper.Viper, sets ...*pflag.FlagSet) error {
	for _, fs := range sets {
		if err := conf.BindPFlags(fs); err != nil {
			return errors.Wrap(err, "binding flags")
		}
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := bindFlags(a.conf, cmd.Flags()); err != nil {
		return err
	}

	a.conf.SetEnvPrefix(envPrefix)
	a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.conf.AutomaticEnv()

	if cfg := a.conf.GetString("config"); cfg != "" {
		a.conf.SetConfigFile(cfg)
		if err := a.conf.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfg)
		}
	}

	a.log = newLogger(cmd.ErrOrStderr(), a.conf.GetBool("verbose"))
	return nil
}

// newLogger returns a console logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
