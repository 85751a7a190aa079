package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreUpload(t *testing.T) {
	t.Parallel()

	putter := &fakePutter{}
	store := NewS3Store(putter, S3Config{Bucket: "onboarding", Region: "ap-south-1"})

	ref, err := store.Upload(context.Background(), "retailers/outlet_photos/", "a.jpg", "image/jpeg", bytes.NewBufferString("jpeg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.PublicID != "retailers/outlet_photos/a.jpg" {
		t.Fatalf("unexpected key: %s", ref.PublicID)
	}
	if ref.URL != "https://onboarding.s3.ap-south-1.amazonaws.com/retailers/outlet_photos/a.jpg" {
		t.Fatalf("unexpected url: %s", ref.URL)
	}
	if aws.ToString(putter.input.ContentType) != "image/jpeg" || string(putter.body) != "jpeg" {
		t.Fatalf("unexpected put: %+v %q", putter.input, putter.body)
	}
}

func TestS3StoreUploadCustomEndpoint(t *testing.T) {
	t.Parallel()

	putter := &fakePutter{}
	store := NewS3Store(putter, S3Config{Bucket: "onboarding", Region: "us-east-1", Endpoint: "http://localhost:4566/"})

	ref, err := store.Upload(context.Background(), "", "form.pdf", "", bytes.NewBufferString("pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.URL != "http://localhost:4566/onboarding/form.pdf" {
		t.Fatalf("unexpected url: %s", ref.URL)
	}
	if aws.ToString(putter.input.ContentType) != "application/octet-stream" {
		t.Fatalf("expected default content type, got %s", aws.ToString(putter.input.ContentType))
	}
}

func TestS3StoreUploadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("access denied")
	store := NewS3Store(&fakePutter{err: boom}, S3Config{Bucket: "onboarding", Region: "ap-south-1"})

	if _, err := store.Upload(context.Background(), "retailers", "a.jpg", "image/jpeg", bytes.NewBufferString("x")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
