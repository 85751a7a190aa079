package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"google.golang.org/api/option"
)

// NewGCSClient prefers explicit credentials JSON and falls back to ADC.
func NewGCSClient(ctx context.Context, credentialsJSON string) (*storage.Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return client, nil
}

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, folder, fileName, contentType string, content io.Reader) (domain.BlobRef, error) {
	key := objectKey(folder, fileName)

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentTypeOrDefault(contentType)

	if _, err := io.Copy(w, content); err != nil {
		w.Close()
		return domain.BlobRef{}, fmt.Errorf("write gcs object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return domain.BlobRef{}, fmt.Errorf("close gcs object %s: %w", key, err)
	}

	return domain.BlobRef{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key),
		PublicID: key,
	}, nil
}
