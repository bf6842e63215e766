// Where: cli/internal/infra/datasource/reader.go
// What: Payload file reader for local paths and s3:// URLs.
// Why: Serve --path for the invoke usecase through a single DataReader.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3"

var (
	errS3NotConfigured = errors.New("s3 client is not configured")
	errInvalidS3URL    = errors.New("invalid s3 url")
)

// S3API is the subset of the S3 client used to fetch payload objects.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Reader reads payload data. Relative local paths resolve against BaseDir.
type Reader struct {
	BaseDir string
	// NewS3 is called lazily for s3:// paths.
	NewS3 func(ctx context.Context) (S3API, error)
}

// ReadData returns the contents at path.
func (r Reader) ReadData(ctx context.Context, path string) ([]byte, error) {
	if isS3URL(path) {
		bucket, key, err := parseS3URL(path)
		if err != nil {
			return nil, err
		}
		return r.readS3(ctx, bucket, key)
	}
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r Reader) readS3(ctx context.Context, bucket, key string) ([]byte, error) {
	if r.NewS3 == nil {
		return nil, errS3NotConfigured
	}
	client, err := r.NewS3(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func isS3URL(raw string) bool {
	return strings.HasPrefix(strings.ToLower(raw), s3Scheme+"://")
}

// parseS3URL splits s3://bucket/key on the first slash after the bucket.
// The key is taken verbatim: no query, fragment, or percent decoding.
func parseS3URL(raw string) (string, string, error) {
	rest := raw[len(s3Scheme+"://"):]
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w %q: want s3://bucket/key", errInvalidS3URL, raw)
	}
	return bucket, key, nil
}
