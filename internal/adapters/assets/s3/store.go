// Package s3 implementa pets.ListableAssetStore sobre un bucket S3-compatible
// (AWS S3, MinIO, Supabase Storage S3 API).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"pet-social/internal/adapters/assets/publicurl"
	"pet-social/internal/domain/pets"
)

// cacheControl de los uploads de imágenes de perfil.
const cacheControl = "max-age=3600"

var ErrExists = errors.New("asset already exists")

type Store struct {
	client *s3.Client
	bucket string
	urls   publicurl.Builder
}

type Config struct {
	Region          string // default us-east-1
	Bucket          string
	Endpoint        string // opcional (MinIO, Supabase, etc)
	PathStyle       bool
	AccessKeyID     string // opcional; si no, default credentials chain
	SecretAccessKey string
	SessionToken    string

	// PublicBaseURL bajo la que se leen los objetos. Default: {Endpoint}/{Bucket}
	// o https://{Bucket}.s3.{Region}.amazonaws.com.
	PublicBaseURL string

	// HTTPClient opcional (tests).
	HTTPClient *http.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = defaultPublicBase(cfg.Endpoint, cfg.Bucket, region)
	}
	urls, err := publicurl.New(base)
	if err != nil {
		return nil, err
	}

	return &Store{client: client, bucket: cfg.Bucket, urls: urls}, nil
}

func defaultPublicBase(endpoint, bucket, region string) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

// Upload es create-only vía If-None-Match: *, sin el round trip extra de HeadObject.
func (s *Store) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(cacheControl),
		IfNoneMatch:   aws.String("*"),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		if isPreconditionFailed(err) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("s3 put %s: %w", path, err)
	}
	return nil
}

func (s *Store) PublicURL(path string) string { return s.urls.URL(path) }

func (s *Store) PathFromURL(raw string) (string, error) { return s.urls.Path(raw) }

// Remove: S3 responde 204 también para keys inexistentes.
func (s *Store) Remove(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(path)})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", path, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]pets.AssetInfo, error) {
	var out []pets.AssetInfo
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			out = append(out, pets.AssetInfo{
				Path:         aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "PreconditionFailed"
	}
	return false
}

var _ pets.ListableAssetStore = (*Store)(nil)
