// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"

	"github.com/envcmp/envcmp/internal/log"
)

// ErrBadURI is returned for destinations that are not s3://bucket[/prefix].
var ErrBadURI = errors.New("invalid S3 URI")

// Putter is the part of the S3 client Publish needs.
type Putter interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Location is a parsed S3 destination.
type Location struct {
	Bucket string
	Prefix string
}

// Key returns the object key for a file named name under the prefix.
func (l Location) Key(name string) string {
	if l.Prefix == "" {
		return name
	}
	return path.Join(l.Prefix, name)
}

func (l Location) String() string {
	return "s3://" + path.Join(l.Bucket, l.Prefix)
}

// ParseS3URI parses s3://bucket or s3://bucket/prefix. The prefix is
// treated as a directory.
func ParseS3URI(uri string) (Location, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "s3://")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q must start with s3://", ErrBadURI, uri)
	}

	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: %q has no bucket", ErrBadURI, uri)
	}
	return Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// Publish uploads the file at file to loc, keyed by its base name, and
// returns the object URI.
func Publish(ctx context.Context, client Putter, loc Location, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}

	key := loc.Key(filepath.Base(file))
	if _, err := client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(loc.Bucket),
		Key:           awsv2.String(key),
		Body:          f,
		ContentLength: awsv2.Int64(fi.Size()),
		ContentType:   awsv2.String("text/plain; charset=utf-8"),
	}); err != nil {
		return "", fmt.Errorf("publish to s3://%s/%s: %w", loc.Bucket, key, err)
	}

	uri := "s3://" + loc.Bucket + "/" + key
	log.Infof("published %s (%s)", uri, humanize.Bytes(uint64(fi.Size()))) //nolint:gosec
	return uri, nil
}
