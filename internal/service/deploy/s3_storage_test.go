package deploy

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/ntsaini/s3-site-deploy/internal/service/s3upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingS3 answers every bucket call from a table of aws error codes.
type recordingS3 struct {
	s3iface.S3API
	s3manageriface.UploaderAPI

	mu         sync.Mutex
	createCode map[string]string
	created    []string
	keys       map[string]string
	websites   []string
}

func (r *recordingS3) CreateBucketWithContext(_ aws.Context, in *s3.CreateBucketInput, _ ...request.Option) (*s3.CreateBucketOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket := aws.StringValue(in.Bucket)
	r.created = append(r.created, bucket)
	if code := r.createCode[bucket]; code != "" {
		return nil, awserr.New(code, "create failed", nil)
	}
	return &s3.CreateBucketOutput{}, nil
}

func (r *recordingS3) PutBucketWebsiteWithContext(_ aws.Context, in *s3.PutBucketWebsiteInput, _ ...request.Option) (*s3.PutBucketWebsiteOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.websites = append(r.websites, aws.StringValue(in.Bucket))
	return &s3.PutBucketWebsiteOutput{}, nil
}

func (r *recordingS3) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	_, _ = io.Copy(io.Discard, in.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[aws.StringValue(in.Key)] = aws.StringValue(in.ContentType)
	return &s3manager.UploadOutput{Location: aws.StringValue(in.Key)}, nil
}

func newS3Helper(r *recordingS3) *s3upload.S3UploadHelper {
	return &s3upload.S3UploadHelper{S3Svc: r, Uploader: r, Region: "us-east-1"}
}

func TestRun_S3BucketAlreadyOwnedProceeds(t *testing.T) {
	r := &recordingS3{
		createCode: map[string]string{
			"example.com":     s3.ErrCodeBucketAlreadyOwnedByYou,
			"www.example.com": s3.ErrCodeBucketAlreadyOwnedByYou,
		},
		keys: map[string]string{},
	}
	dir := siteDir(t, map[string]string{"index.html": "x", "css/site.css": "y"})

	err := newTask(t, testConfig(dir), newS3Helper(r), &fakePurger{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"index.html":   "text/html",
		"css/site.css": "text/css",
	}, r.keys)
	assert.ElementsMatch(t, []string{"example.com", "www.example.com"}, r.websites)
}

func TestRun_S3BucketOwnedByOtherAborts(t *testing.T) {
	r := &recordingS3{
		createCode: map[string]string{"example.com": s3.ErrCodeBucketAlreadyExists},
		keys:       map[string]string{},
	}
	purger := &fakePurger{}

	err := newTask(t, testConfig(siteDir(t, map[string]string{"index.html": "x"})), newS3Helper(r), purger).Run(context.Background())
	require.Error(t, err)

	var aerr awserr.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, s3.ErrCodeBucketAlreadyExists, aerr.Code())
	assert.Empty(t, r.keys)
	assert.Empty(t, r.websites)
	assert.Empty(t, purger.domains)
}
