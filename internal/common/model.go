package common

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

// PublicReadACL is applied to both buckets and every uploaded object.
const PublicReadACL = s3.BucketCannedACLPublicRead

const (
	IndexDocument    = "index.html"
	RedirectProtocol = "https"
)

// Target is the pair of buckets a deploy writes to. It is fixed for the run.
type Target struct {
	Domain    string
	WWWDomain string
}

func NewTarget(domain string) Target {
	return Target{
		Domain:    domain,
		WWWDomain: "www." + domain,
	}
}

// IndexWebsite serves the bucket content with index.html as both the index
// and the error document.
func (t Target) IndexWebsite() *s3.WebsiteConfiguration {
	return &s3.WebsiteConfiguration{
		ErrorDocument: &s3.ErrorDocument{
			Key: aws.String(IndexDocument),
		},
		IndexDocument: &s3.IndexDocument{
			Suffix: aws.String(IndexDocument),
		},
	}
}

// RedirectWebsite sends every request for the www bucket to the primary domain.
func (t Target) RedirectWebsite() *s3.WebsiteConfiguration {
	return &s3.WebsiteConfiguration{
		RedirectAllRequestsTo: &s3.RedirectAllRequestsTo{
			HostName: aws.String(t.Domain),
			Protocol: aws.String(RedirectProtocol),
		},
	}
}

type FileEntry struct {
	// RelPath is slash separated and used as the object key.
	RelPath     string
	AbsPath     string
	ContentType string
}
