package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/ntsaini/s3-site-deploy/internal/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadConfig_FlagsOverFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "deploy.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
aws:
  region: eu-west-1
deploy:
  domain: file.com
  sourceDir: build
  purgeCache: false
`), 0o600))

	app := flags.NewApp()
	deployFlags := flags.NewDeploy()
	awsFlags := flags.NewAwsS3()

	fs := deployFlags.NewFlagSet()
	fs.AddFlagSet(app.NewFlagSet())
	fs.AddFlagSet(awsFlags.NewFlagSet())
	require.NoError(t, fs.Parse([]string{
		"--config", cfgPath,
		"--env-file", filepath.Join(dir, "missing.env"),
		"--bucket-name", "example.com",
		"--s3-region", "us-east-1",
	}))

	cfg, err := loadConfig(app, deployFlags, awsFlags, fs.Changed, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Deploy.Domain)
	assert.Equal(t, "build", cfg.Deploy.SourceDir)
	assert.False(t, cfg.Deploy.PurgeCache)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvCredentials(t *testing.T) {
	app := flags.NewApp()
	deployFlags := flags.NewDeploy()
	awsFlags := flags.NewAwsS3()

	fs := deployFlags.NewFlagSet()
	fs.AddFlagSet(app.NewFlagSet())
	fs.AddFlagSet(awsFlags.NewFlagSet())
	require.NoError(t, fs.Parse([]string{
		"--env-file", "",
		"--bucket-name", "example.com",
	}))

	env := map[string]string{
		"CLOUDFLARE_API_KEY": "key",
		"CLOUDFLARE_EMAIL":   "ops@example.com",
		"AWS_REGION":         "ap-south-1",
	}
	cfg, err := loadConfig(app, deployFlags, awsFlags, fs.Changed, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultSourceDir, cfg.Deploy.SourceDir)
	assert.True(t, cfg.Deploy.PurgeCache)
	assert.Equal(t, "key", cfg.Cloudflare.APIKey)
	assert.Equal(t, "ap-south-1", cfg.AWS.Region)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingDomain(t *testing.T) {
	app := flags.NewApp()
	deployFlags := flags.NewDeploy()
	awsFlags := flags.NewAwsS3()

	fs := deployFlags.NewFlagSet()
	fs.AddFlagSet(app.NewFlagSet())
	require.NoError(t, fs.Parse([]string{"--env-file", "", "--cloudflare=false"}))

	cfg, err := loadConfig(app, deployFlags, awsFlags, fs.Changed, noEnv)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingDomain)
}

func TestLoadConfig_BadFile(t *testing.T) {
	app := flags.NewApp()
	app.ConfigFile = filepath.Join(t.TempDir(), "nope.yml")

	_, err := loadConfig(app, flags.NewDeploy(), flags.NewAwsS3(), func(string) bool { return false }, noEnv)
	assert.Error(t, err)
}
