// Package storage provides the path-addressed blob store backing
// uploaded files, plus time-boxed signed retrieval URLs.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidPath  = errors.New("invalid storage path")
)

// Store is the blob storage contract. Paths look like
// {ownerID}/{unixMillis}-{randomSuffix}{ext} and are write-once.
type Store interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	Remove(ctx context.Context, paths []string) error
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}
