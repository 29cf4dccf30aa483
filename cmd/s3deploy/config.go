package main

import (
	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/ntsaini/s3-site-deploy/internal/flags"
)

// loadConfig layers, lowest first: defaults, the YAML file, the .env file and
// process environment for credentials, then command line flags.
func loadConfig(
	appFlags *flags.App,
	deployFlags *flags.Deploy,
	awsFlags *flags.AwsS3,
	changed func(string) bool,
	lookupEnv func(string) (string, bool),
) (*config.Config, error) {
	app := appFlags.GetApp()

	cfg := config.New()
	if app.ConfigFile != "" {
		var err error
		if cfg, err = config.Read(app.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := config.LoadDotEnv(app.EnvFile); err != nil {
		return nil, err
	}

	deployFlags.ApplyTo(cfg, changed)
	awsFlags.ApplyTo(cfg)
	cfg.ApplyEnv(lookupEnv)

	return cfg, nil
}
