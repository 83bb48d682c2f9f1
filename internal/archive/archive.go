// Package archive opens ZIP containers for a single read pass.
//
// Every call to [Opener.Open] returns a fresh handle that the caller must
// close before the operation that needed it returns. Entries stored with the
// zstd ZIP method are decoded with a shared, bounded decoder pool; deflate
// and store are handled by the zip reader itself.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/jarsource/internal/sizing"
)

const (
	// DefaultMaxEntrySize is the default maximum uncompressed entry size (256MB).
	DefaultMaxEntrySize = 256 << 20

	// DefaultMaxDecoderMemory is the default maximum zstd decoder memory (256MB).
	DefaultMaxDecoderMemory = 256 << 20
)

// Sentinel errors for entry reads.
var (
	// ErrEntryTooLarge is returned when an entry exceeds the configured size limit.
	ErrEntryTooLarge = errors.New("jarsource: entry too large")

	// ErrSizeOverflow is returned when an entry header declares a size that
	// cannot be held in memory.
	ErrSizeOverflow = errors.New("jarsource: size overflow")
)

// Opener opens archives with a fixed decoder configuration.
type Opener struct {
	maxDecoderMemory   uint64
	decoderConcurrency int
	logger             *slog.Logger
	zstd               zip.Decompressor
}

// Option configures an Opener.
type Option func(*Opener)

// WithMaxDecoderMemory sets the maximum memory used by a zstd decoder.
// Set to 0 to disable the limit.
func WithMaxDecoderMemory(limit uint64) Option {
	return func(o *Opener) {
		o.maxDecoderMemory = limit
	}
}

// WithDecoderConcurrency sets the zstd decoder concurrency (default: 1).
// Values < 0 are treated as 0 (use GOMAXPROCS).
func WithDecoderConcurrency(n int) Option {
	return func(o *Opener) {
		if n < 0 {
			n = 0
		}
		o.decoderConcurrency = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Opener) {
		o.logger = logger
	}
}

// NewOpener creates an Opener.
func NewOpener(opts ...Option) *Opener {
	o := &Opener{
		maxDecoderMemory:   DefaultMaxDecoderMemory,
		decoderConcurrency: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	decOpts := []zstd.DOption{zstd.WithDecoderConcurrency(o.decoderConcurrency)}
	if o.maxDecoderMemory > 0 {
		decOpts = append(decOpts, zstd.WithDecoderMaxMemory(o.maxDecoderMemory))
	}
	o.zstd = zstd.ZipDecompressor(decOpts...)
	return o
}

// log returns the logger, falling back to a discard logger if nil.
func (o *Opener) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// Open opens the archive at path.
//
// Errors are reported as *fs.PathError with Op "open".
func (o *Opener) Open(path string) (*zip.ReadCloser, error) {
	rc, err := zip.OpenReader(path)
	if rc == nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if err != nil {
		// Entry names are only compared, never used as file system paths.
		o.log().Debug("archive has non-local entry names", "path", path, "error", err)
	}
	rc.RegisterDecompressor(zstd.ZipMethodWinZip, o.zstd)
	rc.RegisterDecompressor(zstd.ZipMethodPKWare, o.zstd)
	o.log().Debug("archive opened", "path", path, "entries", len(rc.File))
	return rc, nil
}

// Find returns the first entry whose name equals name exactly, or nil.
func Find(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ReadFile drains the entry into a new slice.
//
// Checksum and decompression failures are returned as errors; no partial
// content is ever returned. A maxSize of 0 disables the size limit.
func ReadFile(f *zip.File, maxSize uint64) ([]byte, error) {
	if f.UncompressedSize64 > math.MaxInt {
		return nil, fmt.Errorf("read %s: %w", f.Name, ErrSizeOverflow)
	}
	if maxSize > 0 && f.UncompressedSize64 > maxSize {
		return nil, fmt.Errorf("read %s: %w", f.Name, ErrEntryTooLarge)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := sizing.ReadAll(rc, f.UncompressedSize64, maxSize, ErrEntryTooLarge)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
