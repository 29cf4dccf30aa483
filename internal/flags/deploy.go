package flags

import (
	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/spf13/pflag"
)

const (
	flagBucketName = "bucket-name"
	flagDir        = "dir"
	flagCloudflare = "cloudflare"
	flagExclude    = "exclude"
)

type Deploy struct {
	config.DeployConfig
}

func NewDeploy() *Deploy {
	return &Deploy{}
}

func (f *Deploy) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVar(&f.Domain, flagBucketName,
		"",
		"Domain to deploy, e.g. example.com. Also the name of the primary bucket;\n"+
			"the www. bucket redirects to it.")
	flagSet.StringVar(&f.SourceDir, flagDir,
		config.DefaultSourceDir,
		"Local build output directory to upload.")
	flagSet.BoolVar(&f.PurgeCache, flagCloudflare,
		true,
		"Purge the Cloudflare cache of the zone matching the domain after deploy.")
	flagSet.StringArrayVar(&f.Excludes, flagExclude,
		nil,
		"Glob of files to skip, relative to --dir. Supports **. Can be repeated.")

	return flagSet
}

func (f *Deploy) GetDeploy() *config.DeployConfig {
	return &f.DeployConfig
}

// ApplyTo copies the flags the user set onto cfg, so they win over the config
// file.
func (f *Deploy) ApplyTo(cfg *config.Config, changed func(name string) bool) {
	d := f.GetDeploy()

	if changed(flagBucketName) {
		cfg.Deploy.Domain = d.Domain
	}
	if changed(flagDir) {
		cfg.Deploy.SourceDir = d.SourceDir
	}
	if changed(flagCloudflare) {
		cfg.Deploy.PurgeCache = d.PurgeCache
	}
	if changed(flagExclude) {
		cfg.Deploy.Excludes = append(cfg.Deploy.Excludes, d.Excludes...)
	}
}
