package jarsource

import (
	"bytes"
	"fmt"
	"iter"
	"log/slog"

	"github.com/meigma/jarsource/internal/archive"
	"github.com/meigma/jarsource/manifest"
)

// Interface compliance.
var _ ClassFileLocator = (*Source)(nil)

// Source provides read access to the class files of a JAR or ZIP archive.
//
// A Source only records the archive path. Every operation opens the archive,
// reads what it needs and closes it again before returning, so the file may
// be replaced between calls. Concurrent calls are safe as long as the file is
// not modified while they run.
type Source struct {
	path               string
	manifest           *manifest.Manifest
	opener             *archive.Opener
	maxEntrySize       uint64
	maxDecoderMemory   uint64
	decoderConcurrency int
	logger             *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Source) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// New creates a Source for the archive at path.
//
// New opens the archive once to read its manifest. It fails if the archive
// cannot be opened, or if it contains a manifest that cannot be parsed
// (errors.Is(err, ErrMalformedManifest)). A missing manifest is not an error.
func New(path string, opts ...Option) (*Source, error) {
	s := &Source{
		path:               path,
		maxEntrySize:       archive.DefaultMaxEntrySize,
		maxDecoderMemory:   archive.DefaultMaxDecoderMemory,
		decoderConcurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.opener = archive.NewOpener(
		archive.WithMaxDecoderMemory(s.maxDecoderMemory),
		archive.WithDecoderConcurrency(s.decoderConcurrency),
		archive.WithLogger(s.logger),
	)

	m, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	s.manifest = m
	return s, nil
}

func (s *Source) readManifest() (*manifest.Manifest, error) {
	rc, err := s.opener.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	f := archive.Find(&rc.Reader, manifest.Location)
	if f == nil {
		s.log().Debug("no manifest", "path", s.path)
		return nil, nil
	}
	data, err := archive.ReadFile(f, s.maxEntrySize)
	if err != nil {
		return nil, fmt.Errorf("read manifest of %s: %w", s.path, err)
	}
	m, err := manifest.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read manifest of %s: %w", s.path, err)
	}
	s.log().Debug("manifest found", "path", s.path, "attributes", m.Main.Len())
	return m, nil
}

// Path returns the archive path the Source was created with.
func (s *Source) Path() string {
	return s.path
}

// Manifest returns the archive's manifest, or nil if it has none.
//
// The manifest is read once by New; every call returns the same value.
func (s *Source) Manifest() *manifest.Manifest {
	return s.manifest
}

// ClassFileLocator returns a locator backed by the archive.
func (s *Source) ClassFileLocator() ClassFileLocator {
	return s
}

// Locate implements ClassFileLocator.
//
// Each call scans the archive from scratch. If several entries share the
// class file's path, the first one in archive order wins.
func (s *Source) Locate(typeName string) (Resolution, error) {
	rc, err := s.opener.Open(s.path)
	if err != nil {
		return Resolution{}, err
	}
	defer rc.Close()

	name := ClassFileName(typeName)
	f := archive.Find(&rc.Reader, name)
	if f == nil {
		s.log().Debug("class file not found", "type", typeName, "path", s.path)
		return Unresolved(), nil
	}
	data, err := archive.ReadFile(f, s.maxEntrySize)
	if err != nil {
		return Resolution{}, fmt.Errorf("locate %s: %w", typeName, err)
	}
	s.log().Debug("class file found", "type", typeName, "size", len(data))
	return Resolved(data), nil
}

// Elements returns the archive's entries in archive order.
//
// Each iteration is a separate read pass that opens the archive when it
// starts and closes it when the loop ends, including on break. Every element
// carries an open content stream that the caller must close; streams cannot
// be read once the loop has finished. Directory entries are included.
//
// If the archive or an entry stream cannot be opened, the sequence yields a
// nil element with the error and stops.
func (s *Source) Elements() iter.Seq2[*Element, error] {
	return func(yield func(*Element, error) bool) {
		rc, err := s.opener.Open(s.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rc.Close()

		for _, f := range rc.File {
			r, err := f.Open()
			if err != nil {
				yield(nil, fmt.Errorf("open %s: %w", f.Name, err))
				return
			}
			if !yield(&Element{name: f.Name, rc: r, file: f}, nil) {
				return
			}
		}
	}
}

// Names returns the archive's entry names in archive order without opening
// any entry.
func (s *Source) Names() ([]string, error) {
	rc, err := s.opener.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	names := make([]string, 0, len(rc.File))
	for _, f := range rc.File {
		names = append(names, f.Name)
	}
	return names, nil
}
