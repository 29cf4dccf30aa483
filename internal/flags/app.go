package flags

import (
	"github.com/spf13/pflag"
)

type App struct {
	ConfigFile string
	EnvFile    string
	LogLevel   string
	LogJSON    bool
	Verbose    bool
	Version    bool
}

func NewApp() *App {
	return &App{}
}

func (f *App) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVarP(&f.ConfigFile, "config", "c",
		"",
		"Path to a YAML config file. Flags override its values.")
	flagSet.StringVar(&f.EnvFile, "env-file",
		".env",
		"File with KEY=value credentials loaded into the environment if it exists.")
	flagSet.StringVar(&f.LogLevel, "log-level",
		"info",
		"Log level: debug, info, warn or error.")
	flagSet.BoolVar(&f.LogJSON, "log-json",
		false,
		"Write logs as JSON.")
	flagSet.BoolVarP(&f.Verbose, "verbose", "v",
		false,
		"Shorthand for --log-level debug.")
	flagSet.BoolVarP(&f.Version, "version", "V",
		false,
		"Display version.")

	return flagSet
}

func (f *App) GetApp() *App {
	return f
}

// Level resolves --verbose against --log-level.
func (f *App) Level() string {
	if f.Verbose {
		return "debug"
	}
	return f.LogLevel
}
