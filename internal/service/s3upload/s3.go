package s3upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/ntsaini/s3-site-deploy/internal/common"
	"github.com/ntsaini/s3-site-deploy/internal/common/config"
)

// usEast1 is the only region where CreateBucket must not carry a location
// constraint.
const usEast1 = "us-east-1"

type S3UploadHelper struct {
	S3Svc    s3iface.S3API
	Uploader s3manageriface.UploaderAPI
	Region   string
}

func NewUploader(awsCfg config.AWSConfig) (*S3UploadHelper, error) {
	sess, err := newSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating aws session: %w", err)
	}

	return &S3UploadHelper{
		S3Svc:    s3.New(sess),
		Uploader: s3manager.NewUploader(sess),
		Region:   aws.StringValue(sess.Config.Region),
	}, nil
}

func newSession(awsCfg config.AWSConfig) (*session.Session, error) {
	cfg := aws.Config{}
	if awsCfg.Region != "" {
		cfg.Region = aws.String(awsCfg.Region)
	}
	if awsCfg.Endpoint != "" {
		cfg.Endpoint = aws.String(awsCfg.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if awsCfg.AccessKeyID != "" && awsCfg.SecretAccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(awsCfg.AccessKeyID, awsCfg.SecretAccessKey, "")
	}

	return session.NewSessionWithOptions(session.Options{
		Profile:           awsCfg.ProfileName,
		Config:            cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
}

// CreateBucket creates a public-read bucket. It reports created=false when the
// bucket already exists and is owned by the caller.
func (h *S3UploadHelper) CreateBucket(ctx context.Context, bucketName string) (bool, error) {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
		ACL:    aws.String(common.PublicReadACL),
	}
	if h.Region != "" && h.Region != usEast1 {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(h.Region),
		}
	}

	_, err := h.S3Svc.CreateBucketWithContext(ctx, input)
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			return false, nil
		}
		return false, fmt.Errorf("error creating bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// UploadFile reads the whole file into memory and uploads it under its
// relative path. It returns the object location.
func (h *S3UploadHelper) UploadFile(ctx context.Context, bucketName string, entry common.FileEntry) (string, error) {
	body, err := os.ReadFile(entry.AbsPath)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", entry.AbsPath, err)
	}

	out, err := h.Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(entry.RelPath),
		Body:        bytes.NewReader(body),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(entry.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file to s3, key %s: %w", entry.RelPath, err)
	}
	return out.Location, nil
}

func (h *S3UploadHelper) ConfigureWebsite(ctx context.Context, bucketName string, website *s3.WebsiteConfiguration) error {
	_, err := h.S3Svc.PutBucketWebsiteWithContext(ctx, &s3.PutBucketWebsiteInput{
		Bucket:               aws.String(bucketName),
		WebsiteConfiguration: website,
	})
	if err != nil {
		return fmt.Errorf("error configuring website hosting for %s: %w", bucketName, err)
	}
	return nil
}
