package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatchMax is the S3 DeleteObjects per-request limit.
const deleteBatchMax = 1000

// Options configures the S3-compatible backend.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicBaseURL overrides the computed public URL prefix. When empty,
	// path-style endpoint/bucket addressing is used.
	PublicBaseURL string
}

// S3 implements Provider over an S3-compatible endpoint.
type S3 struct {
	client *s3.Client
	opts   Options
	ready  bool
}

// NewS3 builds a client with static credentials against a custom endpoint.
func NewS3(ctx context.Context, opts Options) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey, opts.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("objstore: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3{client: client, opts: opts}, nil
}

// EnsureBucket checks for the bucket and creates it when missing. The result
// is cached after the first success, so repeated calls within a run are free.
func (s *S3) EnsureBucket(ctx context.Context) error {
	if s.ready {
		return nil
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.opts.Bucket)})
	if err == nil {
		s.ready = true
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("objstore: check bucket %q: %w", s.opts.Bucket, err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.opts.Bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if !errors.As(err, &owned) && !errors.As(err, &exists) {
			return fmt.Errorf("objstore: create bucket %q: %w", s.opts.Bucket, err)
		}
	}

	s.ready = true
	return nil
}

// Upload writes data with overwrite-on-conflict semantics.
func (s *S3) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("objstore: upload %s: %w", key, err)
	}
	return nil
}

// List returns every object key under prefix.
func (s *S3) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.opts.Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("objstore: list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

// Remove deletes keys in batches.
func (s *S3) Remove(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchMax {
		end := min(start+deleteBatchMax, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.opts.Bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("objstore: remove %d objects: %w", end-start, err)
		}
	}
	return nil
}

// PublicURL returns the public address of key.
func (s *S3) PublicURL(key string) string {
	if s.opts.PublicBaseURL != "" {
		return strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + key
	}
	return strings.TrimRight(s.opts.Endpoint, "/") + "/" + s.opts.Bucket + "/" + key
}
