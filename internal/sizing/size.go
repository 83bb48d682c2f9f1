// Package sizing provides bounded reads of entry content.
package sizing

import (
	"bytes"
	"io"
	"math"
)

// maxPresize bounds the initial buffer so a bogus size hint cannot force a
// huge allocation before any data is read.
const maxPresize = 64 << 20

// maxLimit is the largest limit that still leaves room for the probe byte.
const maxLimit = math.MaxInt64 - 1

// ReadAll drains r into a new slice.
//
// hint is the expected size and is only used to presize the buffer; it is
// capped at maxSize. If maxSize is non-zero and r yields more than maxSize
// bytes, ReadAll returns tooLargeErr and no data. Limits beyond what an
// io.LimitedReader can count are treated as no limit.
func ReadAll(r io.Reader, hint, maxSize uint64, tooLargeErr error) ([]byte, error) {
	if maxSize > maxLimit {
		maxSize = 0
	}
	if maxSize > 0 && hint > maxSize {
		hint = maxSize
	}
	hint = min(hint, maxPresize)
	var buf bytes.Buffer
	if hint > 0 {
		buf.Grow(int(hint)) //nolint:gosec // bounded by maxPresize
	}

	if maxSize == 0 {
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	lr := &io.LimitedReader{R: r, N: int64(maxSize) + 1} //nolint:gosec // bounded by maxLimit
	if _, err := buf.ReadFrom(lr); err != nil {
		return nil, err
	}
	if uint64(buf.Len()) > maxSize { //nolint:gosec // len is always non-negative
		return nil, tooLargeErr
	}
	return buf.Bytes(), nil
}
