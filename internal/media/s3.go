package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/anonto42/picly/pkg/config"
)

// S3Uploader implements Uploader backed by an S3-compatible object store.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Uploader configures an uploader targeting the media bucket from
// the configuration.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	if strings.TrimSpace(cfg.MediaBucket) == "" {
		return nil, fmt.Errorf("media: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.MediaRegion),
	}

	if strings.TrimSpace(cfg.MediaEndpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.MediaEndpoint,
					SigningRegion: cfg.MediaRegion,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Uploader{
		uploader: uploader,
		bucket:   cfg.MediaBucket,
		baseURL:  strings.TrimSuffix(cfg.MediaBaseURL, "/"),
	}, nil
}

// Upload stores the content under name and returns its public location.
func (s *S3Uploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	key := strings.TrimLeft(name, "/")
	if key == "" {
		return "", fmt.Errorf("media: empty object key")
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        manager.ReadSeekCloser(r),
		ACL:         s3types.ObjectCannedACLPublicRead,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("media upload %s: %w", key, err)
	}

	if s.baseURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
