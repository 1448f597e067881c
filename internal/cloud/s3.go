package cloud

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = time.Hour

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Client stores dashboard report snapshots in a bucket.
type S3Client struct {
	svc     objectPutter
	presign objectPresigner
	bucket  string
	now     func() time.Time
}

func NewS3Client(ctx context.Context, region, bucket string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	svc := s3.NewFromConfig(cfg)
	return &S3Client{
		svc:     svc,
		presign: s3.NewPresignClient(svc),
		bucket:  bucket,
		now:     time.Now,
	}, nil
}

func (c *S3Client) Bucket() string { return c.bucket }

// UploadReport puts data under key.
func (c *S3Client) UploadReport(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploaded-at": c.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}

// PresignReport returns a GET URL for key in the configured bucket, valid for one hour.
func (c *S3Client) PresignReport(ctx context.Context, key string) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, nil
}

const executivePrefix = "reports/executive/"

var executiveKeyPattern = regexp.MustCompile(`^reports/executive/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.json$`)

// ExecutiveReportKey builds reports/executive/yyyy/mm/dd/<uuid>.json for t in UTC.
func ExecutiveReportKey(t time.Time) string {
	return path.Join(executivePrefix, t.UTC().Format("2006/01/02"), uuid.NewString()+".json")
}

// IsExecutiveReportKey reports whether key has the shape ExecutiveReportKey produces.
func IsExecutiveReportKey(key string) bool {
	return executiveKeyPattern.MatchString(key)
}
