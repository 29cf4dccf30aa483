package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/ntsaini/s3-site-deploy/internal/flags"
	"github.com/ntsaini/s3-site-deploy/internal/logging"
	"github.com/ntsaini/s3-site-deploy/internal/service/cdn"
	"github.com/ntsaini/s3-site-deploy/internal/service/deploy"
	"github.com/ntsaini/s3-site-deploy/internal/service/s3upload"
	"github.com/spf13/cobra"
)

const devVersion = "dev"

var (
	appVersion = devVersion
	commitHash = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "s3deploy",
	Short: "Deploy a static site build to S3 website hosting",
	Long: `Creates the <domain> and www.<domain> buckets, uploads the build directory
to <domain>, configures it for website hosting, redirects www.<domain> to it
over https and purges the Cloudflare cache of the domain.

  s3deploy --bucket-name example.com --dir dist`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagsApp    = flags.NewApp()
	flagsDeploy = flags.NewDeploy()
	flagsAws    = flags.NewAwsS3()
)

func init() {
	rootCmd.PersistentFlags().SortFlags = false

	rootCmd.PersistentFlags().AddFlagSet(flagsApp.NewFlagSet())
	rootCmd.PersistentFlags().AddFlagSet(flagsDeploy.NewFlagSet())
	rootCmd.PersistentFlags().AddFlagSet(flagsAws.NewFlagSet())
}

func run(cmd *cobra.Command, _ []string) error {
	appFlags := flagsApp.GetApp()
	if appFlags.Version {
		printVersion()
		return nil
	}

	logger, err := logging.NewLogger(os.Stdout, appFlags.Level(), appFlags.LogJSON)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flagsApp, flagsDeploy, flagsAws, cmd.Flags().Changed, os.LookupEnv)
	if err != nil {
		return err
	}
	// Fail on missing arguments before any client is built.
	if err := cfg.Validate(); err != nil {
		return err
	}

	storage, err := s3upload.NewUploader(cfg.AWS)
	if err != nil {
		return err
	}

	task, err := deploy.New(cfg, storage, newPurger(cfg), logger)
	if err != nil {
		return err
	}
	return task.Run(cmd.Context())
}

// newPurger never stops the deploy: a client that cannot be built is replaced
// by one whose purge fails with the reason.
func newPurger(cfg *config.Config) deploy.Purger {
	if !cfg.Deploy.PurgeCache {
		return nil
	}

	p, err := cdn.NewPurger(cfg.Cloudflare.APIKey, cfg.Cloudflare.Email)
	if err != nil {
		return deploy.FailedPurger(err)
	}
	return p
}

func printVersion() {
	version := appVersion
	if appVersion == devVersion {
		version += "." + commitHash
	}

	fmt.Printf("version: %s\n", version)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		sig := <-sigChan
		log.Printf("stopping s3deploy: %v\n", sig)
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
