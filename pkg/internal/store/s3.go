package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store keeps artifacts as objects under bucket/prefix.
type S3Store struct {
	base
	cli    S3API
	bucket string
	prefix string
	meter  types.Meter
}

// NewS3Store creates a store over an existing client.
func NewS3Store(cli S3API, bucket, prefix string, options ...types.Option[*S3Store]) (*S3Store, error) {
	if cli == nil {
		return nil, fmt.Errorf("store: s3 client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("store: bucket is required")
	}
	s := &S3Store{
		base:   base{componentMetadata: types.ComponentMetadata{ID: utils.GenerateUniqueHash(), Type: "S3_STORE"}},
		cli:    cli,
		bucket: strings.TrimSpace(bucket),
		prefix: strings.Trim(prefix, "/"),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// SetMeter attaches a meter that counts written artifacts and bytes.
func (s *S3Store) SetMeter(m types.Meter) { s.meter = m }

func (s *S3Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".parquet"):
		return "application/parquet"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	}
	return "application/octet-stream"
}

// Write buffers the artifact and uploads it in one PutObject.
func (s *S3Store) Write(ctx context.Context, name string, fill func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	size := buf.Len()
	_, err := s.cli.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		s.NotifyLoggers(types.ErrorLevel, "artifact upload failed",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "put_object",
			logschema.FieldArtifact, name,
			logschema.FieldError, err,
		)
		return fmt.Errorf("store: put s3://%s/%s: %w", s.bucket, s.key(name), err)
	}

	if s.meter != nil {
		s.meter.IncrementCount(types.MetricArtifactsWritten)
		s.meter.AddCount(types.MetricBytesWritten, uint64(size))
	}
	s.NotifyLoggers(types.DebugLevel, "artifact uploaded",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "put_object",
		logschema.FieldArtifact, name,
		"bucket", s.bucket,
		"key", s.key(name),
		"bytes", size,
	)
	return nil
}

// Open downloads the named artifact.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.cli.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, s.key(name))
		}
		return nil, fmt.Errorf("store: get s3://%s/%s: %w", s.bucket, s.key(name), err)
	}
	return out.Body, nil
}

// Exists reports whether the named artifact exists.
func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.cli.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("store: head s3://%s/%s: %w", s.bucket, s.key(name), err)
}

// List returns artifact names under the prefix in lexicographic order.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}
	var names []string
	var cont *string
	for {
		out, err := s.cli.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(listPrefix),
			ContinuationToken: cont,
			MaxKeys:           aws.Int32(1000),
		})
		if err != nil {
			return nil, fmt.Errorf("store: list s3://%s/%s: %w", s.bucket, listPrefix, err)
		}
		for _, o := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(o.Key), listPrefix)
			if name != "" && !strings.Contains(name, "/") {
				names = append(names, name)
			}
		}
		if aws.ToBool(out.IsTruncated) {
			cont = out.NextContinuationToken
			continue
		}
		break
	}
	sort.Strings(names)
	return names, nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
