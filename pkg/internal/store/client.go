package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// S3Config describes how to reach the artifact bucket.
type S3Config struct {
	Bucket         string
	Prefix         string
	Region         string
	Endpoint       string // optional S3/STS override (LocalStack, MinIO)
	AccessKey      string // empty uses the default credential chain
	SecretKey      string
	SessionToken   string
	RoleARN        string // optional role to assume through STS
	SessionName    string
	Duration       time.Duration
	ForcePathStyle bool
}

// sharedResolver maps both S3 and STS to the same endpoint override.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	})
}

// NewS3Client builds an S3 client from static keys or the default chain,
// optionally assuming RoleARN.
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if c.Region != "" {
		loaders = append(loaders, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.SessionToken),
		))
	}
	if c.Endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(c.Endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	if c.RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), c.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "electrode"
			if c.SessionName != "" {
				o.RoleSessionName = c.SessionName
			}
			if c.Duration > 0 {
				o.Duration = c.Duration
			}
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = c.ForcePathStyle }), nil
}

// OpenS3 builds a client from c and wraps it in an S3Store.
func OpenS3(ctx context.Context, c S3Config, options ...types.Option[*S3Store]) (*S3Store, error) {
	cli, err := NewS3Client(ctx, c)
	if err != nil {
		return nil, err
	}
	return NewS3Store(cli, c.Bucket, c.Prefix, options...)
}
