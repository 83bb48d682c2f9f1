// Package testutil builds archives for tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how a test entry is stored.
type Compression int

const (
	Deflate Compression = iota
	Store
	Zstd
	// Unsupported writes the data as-is under a method no reader registers.
	Unsupported
)

// unsupportedMethod is a ZIP method number with no standard decompressor.
const unsupportedMethod = 99

func (c Compression) method() uint16 {
	switch c {
	case Store:
		return zip.Store
	case Zstd:
		return zstd.ZipMethodWinZip
	case Unsupported:
		return unsupportedMethod
	default:
		return zip.Deflate
	}
}

// TestEntry holds data for one archive entry.
type TestEntry struct {
	Name        string
	Data        []byte
	Compression Compression
	Mode        os.FileMode
}

// WriteArchive writes entries, in order, to a new ZIP file at path.
func WriteArchive(tb testing.TB, path string, entries ...TestEntry) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	w.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	w.RegisterCompressor(unsupportedMethod, func(w io.Writer) (io.WriteCloser, error) {
		return nopWriteCloser{w}, nil
	})
	modTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:     e.Name,
			Method:   e.Compression.method(),
			Modified: modTime,
		}
		if e.Mode != 0 {
			hdr.SetMode(e.Mode)
		}
		ew, err := w.CreateHeader(hdr)
		if err != nil {
			tb.Fatalf("create entry %s: %v", e.Name, err)
		}
		if _, err := ew.Write(e.Data); err != nil {
			tb.Fatalf("write entry %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("close archive: %v", err)
	}
}

// NewArchive writes entries to a fresh file in a test temp dir and returns its path.
func NewArchive(tb testing.TB, entries ...TestEntry) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.jar")
	WriteArchive(tb, path, entries...)
	return path
}

// Stored returns an uncompressed entry.
func Stored(name string, data []byte) TestEntry {
	return TestEntry{Name: name, Data: data, Compression: Store}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
