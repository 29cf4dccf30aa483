package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultSourceDir = "dist"

var (
	ErrMissingDomain    = errors.New("missing domain name")
	ErrMissingSourceDir = errors.New("missing source directory")
)

type AWSConfig struct {
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	Region          string `yaml:"region"`
	ProfileName     string `yaml:"profileName"`
	Endpoint        string `yaml:"endpoint"`
}

type CloudflareConfig struct {
	APIKey string `yaml:"apiKey"`
	Email  string `yaml:"email"`
}

type DeployConfig struct {
	Domain     string   `yaml:"domain"`
	SourceDir  string   `yaml:"sourceDir"`
	PurgeCache bool     `yaml:"purgeCache"`
	Excludes   []string `yaml:"excludes"`
}

type Config struct {
	AWS        AWSConfig        `yaml:"aws"`
	Cloudflare CloudflareConfig `yaml:"cloudflare"`
	Deploy     DeployConfig     `yaml:"deploy"`
}

// New returns a config holding the defaults: the "dist" directory and cache
// purge enabled.
func New() *Config {
	return &Config{
		Deploy: DeployConfig{
			SourceDir:  DefaultSourceDir,
			PurgeCache: true,
		},
	}
}

// Read decodes the YAML file at configPath on top of the defaults.
func Read(configPath string) (*Config, error) {
	config := New()

	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)

	if err := d.Decode(config); err != nil {
		return nil, fmt.Errorf("error decoding config %s: %w", configPath, err)
	}

	return config, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set are kept. A missing file is ignored.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv fills empty credential fields from the environment using lookup,
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	fill := func(dst *string, key string) {
		if *dst != "" {
			return
		}
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	fill(&c.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	fill(&c.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	fill(&c.AWS.Region, "AWS_REGION")
	fill(&c.Cloudflare.APIKey, "CLOUDFLARE_API_KEY")
	fill(&c.Cloudflare.Email, "CLOUDFLARE_EMAIL")
}

// Validate reports every configuration problem found. It never touches the
// network. Cloudflare credentials are not checked: a purge that cannot
// authenticate fails at purge time and does not stop the deploy.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Deploy.Domain) == "" {
		errs = append(errs, ErrMissingDomain)
	}
	if strings.TrimSpace(c.Deploy.SourceDir) == "" {
		errs = append(errs, ErrMissingSourceDir)
	}

	return errors.Join(errs...)
}
