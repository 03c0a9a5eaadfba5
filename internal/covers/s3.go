package covers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/haguru/elibrary/config"
	"github.com/haguru/elibrary/internal/interfaces"
)

// objectAPI is the part of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps covers as objects in an S3-compatible bucket. Paths recorded on books are
// object keys.
type S3Store struct {
	client objectAPI
	bucket string
	logger interfaces.Logger
}

var _ interfaces.CoverStore = (*S3Store)(nil)

// NewS3Store builds a client for cfg. Static credentials are used when an access key is
// set, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger interfaces.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Store(client, cfg.Bucket, logger), nil
}

func newS3Store(client objectAPI, bucket string, logger interfaces.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, logger: logger}
}

func (s *S3Store) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	data, mime, err := readImage(content)
	if err != nil {
		s.logger.Warn("rejected cover upload", "file", originalName, "error", err)
		return "", err
	}

	key := objectName(originalName, mime)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mime.String()),
	})
	if err != nil {
		return "", fmt.Errorf("put cover %s: %w", key, err)
	}

	s.logger.Debug("cover stored", "bucket", s.bucket, "key", key)
	return key, nil
}

func (s *S3Store) DataURI(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrCoverNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", ErrCoverNotFound
		}
		return "", fmt.Errorf("get cover %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxCoverBytes))
	if err != nil {
		return "", fmt.Errorf("read cover %s: %w", key, err)
	}
	return dataURI(key, data), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete cover %s: %w", key, err)
	}
	return nil
}
