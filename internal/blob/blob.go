// Package blob provides binary asset storage with stable content URLs.
package blob

import (
	"context"
	"io"
	"time"
)

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent float64)

// ObjectInfo describes one stored object as reported by the backing store.
type ObjectInfo struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Storage is the blob-store contract. Paths are caller-chosen; uploading to
// an existing path overwrites, there is no versioning or deduplication.
type Storage interface {
	// Upload stores the reader's bytes at path and returns the public URL.
	// size is the total byte count, used for progress reporting; onProgress
	// may be nil.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, onProgress ProgressFunc) (string, error)

	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error

	// List returns every object under the given path prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// progressReader reports consumed bytes against a known total.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onProgress ProgressFunc) io.Reader {
	if onProgress == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		p.onProgress(pct)
	}
	return n, err
}
