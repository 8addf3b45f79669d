// Package storage holds file payloads for FileRecord metadata rows.
package storage

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Blobs is a flat key/value object store.
type Blobs interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, keys ...string) error
	URL(key string) string
}

// Key builds the object key for a file: {path}/{unix millis}-{name}.
func Key(path, name string, now time.Time) string {
	path = strings.Trim(path, "/")
	stamped := strconv.FormatInt(now.UnixMilli(), 10) + "-" + name
	if path == "" {
		return stamped
	}
	return path + "/" + stamped
}
