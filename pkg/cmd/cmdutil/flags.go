package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by every command
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("log-file", "", "also write json logs to this file, rotated by size")
	flags.String("dotenv", ".env.local", "the dotenv file to load before reading the environment")
	flags.String("metrics-textfile", "", "write the prometheus metrics to this file when the command finishes")
	flags.Bool("no-color", false, "disable table colors")
}

// InputFlags defines the flags of the commands that evaluate a strategy file
func InputFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "strategy config file")
	flags.String("data", "", "price csv file or directory, overrides the data list of the config")
	flags.String("format", "", "csv format: binance or metatrader")
}
