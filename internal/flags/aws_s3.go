package flags

import (
	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/spf13/pflag"
)

const (
	flagS3Region   = "s3-region"
	flagS3Profile  = "s3-profile"
	flagS3Endpoint = "s3-endpoint-override"
)

type AwsS3 struct {
	config.AWSConfig
}

func NewAwsS3() *AwsS3 {
	return &AwsS3{}
}

func (f *AwsS3) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVar(&f.Region, flagS3Region,
		"",
		"The S3 region to create the buckets in. Defaults to AWS_REGION.")
	flagSet.StringVar(&f.ProfileName, flagS3Profile,
		"",
		"The S3 profile to use for credentials.")
	flagSet.StringVar(&f.Endpoint, flagS3Endpoint,
		"",
		"An alternate url endpoint to send S3 API calls to.")

	return flagSet
}

func (f *AwsS3) GetAwsS3() *config.AWSConfig {
	return &f.AWSConfig
}

// ApplyTo overrides the config file values with non-empty flags.
func (f *AwsS3) ApplyTo(cfg *config.Config) {
	a := f.GetAwsS3()

	if a.Region != "" {
		cfg.AWS.Region = a.Region
	}
	if a.ProfileName != "" {
		cfg.AWS.ProfileName = a.ProfileName
	}
	if a.Endpoint != "" {
		cfg.AWS.Endpoint = a.Endpoint
	}
}
