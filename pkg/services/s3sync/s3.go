// Package s3sync mirrors the report bucket onto the local disk.
package s3sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const directoryContentType = "application/x-directory"

// Client is the part of the S3 API the syncer needs.
type Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Options struct {
	Bucket      string
	Destination string
	PageSize    int32
	// Concurrency bounds the downloads running at once within a page.
	Concurrency int
}

type Result struct {
	Downloaded int
	Skipped    int
}

type Syncer struct {
	client Client
}

func NewSyncer(client Client) *Syncer {
	return &Syncer{client: client}
}

// Sync downloads every object of the bucket to Destination/<key>, one listing
// page at a time.
func (s *Syncer) Sync(ctx context.Context, opts Options) (Result, error) {
	logger := zerolog.Ctx(ctx)
	if opts.Bucket == "" {
		return Result{}, fmt.Errorf("bucket name is required")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	logger.Info().
		Str("bucket", opts.Bucket).
		Str("destination", opts.Destination).
		Msg("syncing files from S3")

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(opts.Bucket),
	}, func(o *s3.ListObjectsV2PaginatorOptions) {
		if opts.PageSize > 0 {
			o.Limit = opts.PageSize
		}
	})

	var (
		result Result
		mu     sync.Mutex
	)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to list objects in %s: %w", opts.Bucket, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			g.Go(func() error {
				downloaded, err := s.download(gctx, opts, key)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				if downloaded {
					result.Downloaded++
				} else {
					result.Skipped++
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Syncer) download(ctx context.Context, opts Options, key string) (bool, error) {
	logger := zerolog.Ctx(ctx).With().Str("key", key).Logger()

	if strings.HasSuffix(key, "/") {
		logger.Info().Msg("object is a directory, skipping")
		return false, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket:       aws.String(opts.Bucket),
		Key:          aws.String(key),
		ChecksumMode: types.ChecksumModeEnabled,
	})
	if err != nil {
		return false, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	if strings.Contains(aws.ToString(out.ContentType), directoryContentType) {
		logger.Info().Msg("object is a directory, skipping")
		return false, nil
	}

	path := filepath.Join(opts.Destination, filepath.FromSlash(key))
	if err := writeStream(path, out.Body); err != nil {
		return false, err
	}
	logger.Info().Str("path", path).Msg("downloaded file")
	return true, nil
}

func writeStream(path string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
