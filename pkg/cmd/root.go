package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tradelab/indicore/pkg/cmd/cmdutil"
	"github.com/tradelab/indicore/pkg/metrics"
)

var RootCmd = &cobra.Command{
	Use:   "indicore",
	Short: "indicore evaluates technical indicators and their entry and exit signals",
	Long:  "indicator calculation and signal derivation engine",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Once the flags are parsed, we can bind config keys with flags.
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return errors.Wrap(err, "failed to bind flags")
		}

		if err := loadDotenv(viper.GetString("dotenv")); err != nil {
			return err
		}

		return setupLogger(viper.GetBool("debug"), viper.GetString("log-file"))
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if filename := viper.GetString("metrics-textfile"); filename != "" {
			if err := metrics.WriteTextfile(filename); err != nil {
				return errors.Wrapf(err, "metrics textfile %s", filename)
			}
			log.Infof("metrics written to %s", filename)
		}
		return nil
	},
}

func init() {
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

func loadDotenv(dotenvFile string) error {
	if dotenvFile == "" {
		return nil
	}

	if _, err := os.Stat(dotenvFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// variables already set in the environment win
	if err := godotenv.Load(dotenvFile); err != nil {
		return errors.Wrapf(err, "error loading dotenv file %s", dotenvFile)
	}

	log.Debugf("loaded dotenv file %s", dotenvFile)
	return nil
}

func setupLogger(debug bool, logFile string) error {
	logger := log.StandardLogger()
	logger.SetFormatter(&prefixed.TextFormatter{})

	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	if logFile == "" {
		return nil
	}

	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	}

	logger.AddHook(
		lfshook.NewHook(
			lfshook.WriterMap{
				log.DebugLevel: writer,
				log.InfoLevel:  writer,
				log.WarnLevel:  writer,
				log.ErrorLevel: writer,
				log.FatalLevel: writer,
			},
			&log.JSONFormatter{},
		),
	)
	return nil
}

func Execute() {
	viper.SetEnvPrefix("indicore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
