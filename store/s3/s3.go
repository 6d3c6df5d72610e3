// Package s3 implements an S3-backed artifact store.
//
// Object PUTs are atomic at the object level (readers see the previous
// object or the complete new one, never partial bytes), which satisfies the
// store publication contract. Artifacts live under an optional key prefix
// inside one bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	st "github.com/unkn0wn-root/rendercache/store"
)

// Client is the subset of the S3 API the store uses. *s3.Client from
// aws-sdk-go-v2 satisfies it; tests substitute a fake.
type Client interface {
	GetObject(ctx context.Context, in *awss3.GetObjectInput, opts ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *awss3.HeadObjectInput, opts ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *awss3.DeleteObjectInput, opts ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

type Config struct {
	// Client is a configured S3 client, e.g. s3.NewFromConfig(awsCfg).
	// The store never closes it.
	Client Client

	Bucket string

	// Prefix namespaces artifact keys inside the bucket, e.g. "rendered/".
	Prefix string

	// ContentType is set on uploaded artifacts; empty leaves it unset.
	ContentType string
}

type Store struct {
	client      Client
	bucket      string
	prefix      string
	contentType string
}

var _ st.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, errors.New("s3 store: client is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("s3 store: bucket is required")
	}
	return &Store{
		client:      cfg.Client,
		bucket:      cfg.Bucket,
		prefix:      cfg.Prefix,
		contentType: cfg.ContentType,
	}, nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) (bool, error) {
	in := &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
		Body:   bytes.NewReader(value),
	}
	if s.contentType != "" {
		in.ContentType = aws.String(s.contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	return err
}

// Close is a no-op; the S3 client is owned by the caller.
func (s *Store) Close(context.Context) error { return nil }
