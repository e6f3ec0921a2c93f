package garagestorages3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"note-share-be/pkg/blobstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the part of the S3 client the store calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type GarageS3 struct {
	Client        ObjectAPI
	Bucket        string
	PublicBaseURL string
}

type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	// PublicBaseURL prefixes returned file URLs. Defaults to Endpoint.
	PublicBaseURL string
}

var _ blobstore.Store = (*GarageS3)(nil)

// NewGarageClient builds a path-style S3 client suitable for Garage and
// other S3-compatible hosts.
func NewGarageClient(cfg Config) (*GarageS3, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("garage s3: endpoint and bucket are required")
	}

	staticResolver := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(staticResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sdk config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return New(client, cfg), nil
}

func New(client ObjectAPI, cfg Config) *GarageS3 {
	base := cfg.PublicBaseURL
	if base == "" {
		base = cfg.Endpoint
	}
	return &GarageS3{
		Client:        client,
		Bucket:        cfg.Bucket,
		PublicBaseURL: strings.TrimRight(base, "/"),
	}
}

// Upload stores content under <resourceType>/<folder>/<publicId>.
func (g *GarageS3) Upload(ctx context.Context, content io.Reader, opts blobstore.UploadOptions) (*blobstore.UploadResult, error) {
	publicID := blobstore.PublicID(opts.Folder, opts.PublicID)
	key := blobstore.ObjectKey(opts.ResourceType, publicID)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(g.Bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(opts.ContentType),
	}
	if opts.Size >= 0 {
		input.ContentLength = aws.Int64(opts.Size)
	}
	if opts.FileName != "" {
		input.ContentDisposition = aws.String(fmt.Sprintf("inline; filename=%q", opts.FileName))
	}

	if _, err := g.Client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &blobstore.UploadResult{
		SecureURL: blobstore.PublicURL(g.PublicBaseURL, g.Bucket, key),
		PublicID:  publicID,
	}, nil
}

func (g *GarageS3) Destroy(ctx context.Context, publicID string, opts blobstore.DestroyOptions) error {
	key := blobstore.ObjectKey(opts.ResourceType, publicID)
	_, err := g.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
