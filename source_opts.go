package jarsource

import "log/slog"

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithMaxEntrySize limits the uncompressed size of content returned by Locate
// and of the manifest entry. Set limit to 0 to disable the limit.
func WithMaxEntrySize(limit uint64) Option {
	return func(s *Source) {
		s.maxEntrySize = limit
	}
}

// WithMaxDecoderMemory limits the maximum memory used by the zstd decoder
// for entries stored with the zstd method. Set limit to 0 to disable the limit.
func WithMaxDecoderMemory(limit uint64) Option {
	return func(s *Source) {
		s.maxDecoderMemory = limit
	}
}

// WithDecoderConcurrency sets the zstd decoder concurrency (default: 1).
// Values < 0 are treated as 0 (use GOMAXPROCS).
func WithDecoderConcurrency(n int) Option {
	return func(s *Source) {
		if n < 0 {
			n = 0
		}
		s.decoderConcurrency = n
	}
}
