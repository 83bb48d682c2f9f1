package jarsource

import (
	"github.com/meigma/jarsource/internal/archive"
	"github.com/meigma/jarsource/manifest"
)

// Sentinel errors re-exported from internal packages.
var (
	// ErrEntryTooLarge is returned when an entry exceeds the configured
	// maximum entry size.
	ErrEntryTooLarge = archive.ErrEntryTooLarge

	// ErrSizeOverflow is returned when an entry header declares a size that
	// cannot be held in memory.
	ErrSizeOverflow = archive.ErrSizeOverflow

	// ErrMalformedManifest is returned by New when the archive carries a
	// manifest that cannot be parsed.
	ErrMalformedManifest = manifest.ErrMalformed
)
