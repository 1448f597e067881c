package cloud

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	putErr  error
	expires time.Duration
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://example.test/" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)}, nil
}

func newFakeS3Client(f *fakeS3) *S3Client {
	return &S3Client{
		svc:     f,
		presign: f,
		bucket:  "reports-bucket",
		now:     func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestUploadReport(t *testing.T) {
	f := &fakeS3{}
	c := newFakeS3Client(f)

	require.NoError(t, c.UploadReport(context.Background(), "reports/executive/x.json", []byte(`{"a":1}`), "application/json"))

	assert.Equal(t, "reports-bucket", aws.ToString(f.put.Bucket))
	assert.Equal(t, "application/json", aws.ToString(f.put.ContentType))
	assert.Equal(t, "2024-05-01T12:00:00Z", f.put.Metadata["uploaded-at"])
	assert.Equal(t, `{"a":1}`, string(f.body))
}

func TestUploadReportPutFailure(t *testing.T) {
	boom := errors.New("access denied")
	c := newFakeS3Client(&fakeS3{putErr: boom})

	err := c.UploadReport(context.Background(), "k.json", nil, "application/json")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPresignReport(t *testing.T) {
	f := &fakeS3{}
	c := newFakeS3Client(f)

	url, err := c.PresignReport(context.Background(), "reports/executive/x.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/reports-bucket/reports/executive/x.json", url)
	assert.Equal(t, time.Hour, f.expires)
}

func TestExecutiveReportKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	key := ExecutiveReportKey(ts)

	assert.Regexp(t, regexp.MustCompile(`^reports/executive/2024/03/10/[0-9a-f-]{36}\.json$`), key)
	assert.NotEqual(t, key, ExecutiveReportKey(ts))
	assert.True(t, IsExecutiveReportKey(key))
}

func TestIsExecutiveReportKeyRejectsOtherObjects(t *testing.T) {
	for _, key := range []string{
		"",
		"https://evil.example/login",
		"reports/executive/../../secrets.json",
		"private/2024/03/10/0b6c1c9e-7f0e-4c2a-9d1c-2b8a2f3e4d5c.json",
		"reports/executive/2024/03/10/0b6c1c9e-7f0e-4c2a-9d1c-2b8a2f3e4d5c.json?x=1",
	} {
		assert.False(t, IsExecutiveReportKey(key), key)
	}
}

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSPublish(t *testing.T) {
	f := &fakeSNS{}
	c := &SNSClient{svc: f, topicArn: "arn:aws:sns:us-east-1:123:alerts"}

	id, err := c.Publish(context.Background(), "Alert resolved", "ALT-001")
	require.NoError(t, err)

	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:alerts", aws.ToString(f.in.TopicArn))
	assert.Equal(t, "Alert resolved", aws.ToString(f.in.Subject))
	assert.Equal(t, "ALT-001", aws.ToString(f.in.Message))
}

func TestSNSPublishError(t *testing.T) {
	c := &SNSClient{svc: &fakeSNS{err: errors.New("throttled")}, topicArn: "arn"}
	_, err := c.Publish(context.Background(), "s", "m")
	assert.ErrorContains(t, err, "throttled")
}
