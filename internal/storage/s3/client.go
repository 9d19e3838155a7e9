package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloudstore/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Disposition controls how a presigned URL instructs the browser to
// handle the object.
type Disposition string

const (
	DispositionAttachment Disposition = "attachment"
	DispositionInline     Disposition = "inline"
)

const (
	emptyAWSSessionToken = ""
	blobKeyPrefix        = "files/"

	errFailedCreateAWSSessionFmt   = "failed to create AWS session: %w"
	errFailedUploadObjectFmt       = "failed to upload object: %w"
	errFailedDownloadObjectFmt     = "failed to download object: %w"
	errFailedReadObjectBodyFmt     = "failed to read object body: %w"
	errFailedDeleteObjectFmt       = "failed to delete object: %w"
	errFailedPresignDownloadFmt    = "failed to generate presigned download URL: %w"
	contentDispositionHeaderFormat = `%s; filename="%s"`
)

// Client wraps the bucket-scoped S3 operations the service needs. It is
// constructed once at startup and injected; nothing here is lazy.
type Client struct {
	svc        *s3.S3
	bucketName string
	presignTTL time.Duration
}

func NewClient(cfg *config.AWSConfig, presignTTL time.Duration) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:        s3.New(sess),
		bucketName: cfg.BucketName,
		presignTTL: presignTTL,
	}, nil
}

// Upload stores the object under a fresh blob key and returns that key.
func (c *Client) Upload(ctx context.Context, src io.Reader, filename, contentType string) (string, error) {
	blobKey := BuildBlobKey(filename)

	body, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf(errFailedUploadObjectFmt, err)
	}

	_, err = c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(blobKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})

	if err != nil {
		return "", fmt.Errorf(errFailedUploadObjectFmt, err)
	}

	return blobKey, nil
}

func (c *Client) Download(ctx context.Context, blobKey string) ([]byte, error) {
	out, err := c.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(blobKey),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedDownloadObjectFmt, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedReadObjectBodyFmt, err)
	}

	return data, nil
}

func (c *Client) Delete(ctx context.Context, blobKey string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(blobKey),
	})

	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}

	return nil
}

// PresignGet returns a time-limited retrieval URL. The disposition
// decides whether the browser downloads the object or renders it
// inline; filename is what the browser will call the download.
func (c *Client) PresignGet(ctx context.Context, blobKey string, disposition Disposition, filename string) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(c.bucketName),
		Key:                        aws.String(blobKey),
		ResponseContentDisposition: aws.String(fmt.Sprintf(contentDispositionHeaderFormat, disposition, filename)),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.presignTTL)
	if err != nil {
		return "", fmt.Errorf(errFailedPresignDownloadFmt, err)
	}

	return url, nil
}

// BuildBlobKey derives a collision-free object key for a new upload:
// a random unique segment keeps same-named files apart in the bucket.
func BuildBlobKey(filename string) string {
	return blobKeyPrefix + uuid.NewString() + "-" + filename
}
