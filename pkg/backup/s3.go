package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Options struct {
	Bucket       string
	Region       string
	EndpointURL  string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

var _ Uploader = (*S3)(nil)

type S3 struct {
	Bucket string
	s3c    *s3.Client
}

func NewS3(ctx context.Context, opt S3Options) (*S3, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(opt.Region),
	}
	if opt.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opt.AccessKey, opt.SecretKey, "")))
	}
	if opt.EndpointURL != "" {
		opts = append(opts, config.WithBaseEndpoint(opt.EndpointURL))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config failed: %w", err)
	}

	return &S3{
		Bucket: opt.Bucket,
		s3c: s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = opt.UsePathStyle
		}),
	}, nil
}

func (s *S3) Put(ctx context.Context, data []byte, key string) error {
	_, err := s.s3c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.Bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/x-protobuf"),
	})
	return err
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.s3c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", ErrNoObject, key)
		}
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
