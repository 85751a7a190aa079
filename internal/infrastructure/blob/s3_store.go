package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type S3Store struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewS3Client builds a client from the default credential chain, with static
// keys and a custom endpoint when set (LocalStack, MinIO).
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func NewS3Store(client objectPutter, cfg S3Config) *S3Store {
	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return &S3Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}
}

func (s *S3Store) Upload(ctx context.Context, folder, fileName, contentType string, content io.Reader) (domain.BlobRef, error) {
	key := objectKey(folder, fileName)

	// The SDK needs a seekable body to sign the payload.
	data, err := io.ReadAll(content)
	if err != nil {
		return domain.BlobRef{}, fmt.Errorf("read %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentTypeOrDefault(contentType)),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return domain.BlobRef{}, fmt.Errorf("put s3 object %s: %w", key, err)
	}

	return domain.BlobRef{URL: s.baseURL + "/" + key, PublicID: key}, nil
}
