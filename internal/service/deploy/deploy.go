// Package deploy publishes a static site build to S3 website hosting.
//
// A run creates the primary and www buckets, uploads every file of the build
// directory to the primary bucket, configures the primary bucket as a website
// and the www bucket as an HTTPS redirect to it, and finally purges the CDN
// cache of the domain. Failures before the purge abort the run. Files already
// uploaded when a sibling upload fails are left in place.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/ntsaini/s3-site-deploy/internal/common"
	"github.com/ntsaini/s3-site-deploy/internal/common/config"
	"github.com/ntsaini/s3-site-deploy/internal/logging"
	"github.com/ntsaini/s3-site-deploy/internal/service/cdn"
	"github.com/ntsaini/s3-site-deploy/internal/service/sitefiles"
	"golang.org/x/sync/errgroup"
)

var ErrMissingPurger = errors.New("cache purge enabled but no purger configured")

type Storage interface {
	CreateBucket(ctx context.Context, bucketName string) (bool, error)
	UploadFile(ctx context.Context, bucketName string, entry common.FileEntry) (string, error)
	ConfigureWebsite(ctx context.Context, bucketName string, website *s3.WebsiteConfiguration) error
}

type Purger interface {
	Purge(ctx context.Context, domain string) (string, error)
}

type failedPurger struct {
	err error
}

func (p failedPurger) Purge(context.Context, string) (string, error) {
	return "", p.err
}

// FailedPurger stands in for a CDN client that could not be built. Every
// purge returns err, which the run logs and swallows.
func FailedPurger(err error) Purger {
	return failedPurger{err: err}
}

type Task struct {
	ID         string
	Target     common.Target
	SourceDir  string
	Excludes   []string
	PurgeCache bool

	storage Storage
	purger  Purger
	logger  *slog.Logger
}

// New validates cfg before anything touches the network. A nil purger with
// cache purge enabled makes the purge step fail, not the run.
func New(cfg *config.Config, storage Storage, purger Purger, logger *slog.Logger) (*Task, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Deploy.PurgeCache && purger == nil {
		purger = FailedPurger(ErrMissingPurger)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	id := uuid.NewString()
	target := common.NewTarget(cfg.Deploy.Domain)

	return &Task{
		ID:         id,
		Target:     target,
		SourceDir:  cfg.Deploy.SourceDir,
		Excludes:   cfg.Deploy.Excludes,
		PurgeCache: cfg.Deploy.PurgeCache,
		storage:    storage,
		purger:     purger,
		logger:     logging.WithRun(logger, id, target.Domain),
	}, nil
}

// Run performs the deploy and returns the first fatal error.
func (t *Task) Run(ctx context.Context) error {
	t.logger.Info("deploy started", slog.String("source", t.SourceDir))

	if err := t.createBuckets(ctx); err != nil {
		return err
	}

	entries, err := sitefiles.Enumerate(t.SourceDir, t.Excludes)
	if err != nil {
		return err
	}

	if err := t.uploadFiles(ctx, entries); err != nil {
		return err
	}

	if err := t.configureHosting(ctx); err != nil {
		return err
	}

	purge := "disabled"
	if t.PurgeCache {
		purge = t.purgeCache(ctx)
	}

	t.logger.Info("deploy finished",
		slog.Int("files", len(entries)),
		slog.String("purge", purge),
	)
	return nil
}

func (t *Task) createBuckets(ctx context.Context) error {
	var g errgroup.Group

	for _, bucket := range []string{t.Target.Domain, t.Target.WWWDomain} {
		g.Go(func() error {
			created, err := t.storage.CreateBucket(ctx, bucket)
			if err != nil {
				t.logger.Error("create bucket failed", slog.String("bucket", bucket), slog.Any("error", err))
				return err
			}
			t.logger.Info("bucket ready", slog.String("bucket", bucket), slog.Bool("created", created))
			return nil
		})
	}

	return g.Wait()
}

// uploadFiles starts every upload at once. A failed upload does not cancel
// its siblings; the first error is returned after all of them finish.
func (t *Task) uploadFiles(ctx context.Context, entries []common.FileEntry) error {
	var g errgroup.Group

	for _, entry := range entries {
		g.Go(func() error {
			location, err := t.storage.UploadFile(ctx, t.Target.Domain, entry)
			if err != nil {
				t.logger.Error("upload failed", slog.String("key", entry.RelPath), slog.Any("error", err))
				return err
			}
			t.logger.Debug("uploaded file",
				slog.String("src", entry.AbsPath),
				slog.String("dest", location),
				slog.String("content_type", entry.ContentType),
			)
			return nil
		})
	}

	return g.Wait()
}

func (t *Task) configureHosting(ctx context.Context) error {
	var g errgroup.Group

	websites := map[string]*s3.WebsiteConfiguration{
		t.Target.Domain:    t.Target.IndexWebsite(),
		t.Target.WWWDomain: t.Target.RedirectWebsite(),
	}
	for bucket, website := range websites {
		g.Go(func() error {
			if err := t.storage.ConfigureWebsite(ctx, bucket, website); err != nil {
				t.logger.Error("configuring static hosting failed", slog.String("bucket", bucket), slog.Any("error", err))
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// purgeCache never fails the run. It returns the outcome for the summary.
func (t *Task) purgeCache(ctx context.Context) string {
	zoneID, err := t.purger.Purge(ctx, t.Target.Domain)
	switch {
	case errors.Is(err, cdn.ErrZoneNotFound):
		t.logger.Warn("cache purge skipped, zone not found")
		return "not found"
	case err != nil:
		t.logger.Error("cache purge failed", slog.Any("error", err))
		return "failed"
	}

	t.logger.Info("cache purged", slog.String("zone", zoneID))
	return "purged"
}
