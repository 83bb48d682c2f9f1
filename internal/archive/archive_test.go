package archive

import (
	"bytes"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/jarsource/internal/testutil"
)

func TestOpener_Open(t *testing.T) {
	t.Parallel()

	path := testutil.NewArchive(t,
		testutil.TestEntry{Name: "a.txt", Data: []byte("a")},
		testutil.TestEntry{Name: "b.txt", Data: []byte("b")},
	)
	rc, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer rc.Close()

	require.Len(t, rc.File, 2)
	assert.Equal(t, "a.txt", rc.File[0].Name)
	assert.Equal(t, "b.txt", rc.File[1].Name)
}

func TestOpener_OpenErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewOpener().Open(filepath.Join(dir, "missing.zip"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	bogus := filepath.Join(dir, "bogus.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("PK but not really"), 0o644))
	_, err = NewOpener().Open(bogus)
	require.ErrorIs(t, err, zip.ErrFormat)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, bogus, pathErr.Path)
}

func TestFind(t *testing.T) {
	t.Parallel()

	path := testutil.NewArchive(t,
		testutil.TestEntry{Name: "dup", Data: []byte("first")},
		testutil.TestEntry{Name: "dup", Data: []byte("second")},
		testutil.TestEntry{Name: "Dir/File", Data: []byte("x")},
	)
	rc, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer rc.Close()

	f := Find(&rc.Reader, "dup")
	require.NotNil(t, f)
	assert.Same(t, rc.File[0], f)

	assert.NotNil(t, Find(&rc.Reader, "Dir/File"))
	assert.Nil(t, Find(&rc.Reader, "dir/file"))
	assert.Nil(t, Find(&rc.Reader, "/Dir/File"))
	assert.Nil(t, Find(&rc.Reader, ""))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	big := bytes.Repeat([]byte("0123456789"), 1000)
	tests := []struct {
		name  string
		entry testutil.TestEntry
	}{
		{"deflate", testutil.TestEntry{Name: "x", Data: big}},
		{"store", testutil.Stored("x", big)},
		{"zstd", testutil.TestEntry{Name: "x", Data: big, Compression: testutil.Zstd}},
		{"empty", testutil.Stored("x", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rc, err := NewOpener(WithMaxDecoderMemory(0), WithDecoderConcurrency(-1)).Open(testutil.NewArchive(t, tt.entry))
			require.NoError(t, err)
			defer rc.Close()

			data, err := ReadFile(rc.File[0], DefaultMaxEntrySize)
			require.NoError(t, err)
			assert.NotNil(t, data)
			assert.Equal(t, len(tt.entry.Data), len(data))
			assert.True(t, bytes.Equal(tt.entry.Data, data))
		})
	}
}

func TestReadFile_TooLarge(t *testing.T) {
	t.Parallel()

	rc, err := NewOpener().Open(testutil.NewArchive(t, testutil.TestEntry{Name: "x", Data: []byte("abcd")}))
	require.NoError(t, err)
	defer rc.Close()

	_, err = ReadFile(rc.File[0], 3)
	require.ErrorIs(t, err, ErrEntryTooLarge)

	data, err := ReadFile(rc.File[0], 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)
}

func TestReadFile_SizeOverflow(t *testing.T) {
	t.Parallel()

	rc, err := NewOpener().Open(testutil.NewArchive(t, testutil.Stored("x", []byte("abc"))))
	require.NoError(t, err)
	defer rc.Close()

	rc.File[0].UncompressedSize64 = math.MaxUint64
	_, err = ReadFile(rc.File[0], 0)
	require.ErrorIs(t, err, ErrSizeOverflow)

	_, err = ReadFile(rc.File[0], math.MaxUint64)
	require.ErrorIs(t, err, ErrSizeOverflow)
}

func TestReadFile_UnlimitedSizes(t *testing.T) {
	t.Parallel()

	rc, err := NewOpener().Open(testutil.NewArchive(t, testutil.TestEntry{Name: "x", Data: []byte("abc")}))
	require.NoError(t, err)
	defer rc.Close()

	for _, limit := range []uint64{0, math.MaxInt64, math.MaxUint64} {
		data, err := ReadFile(rc.File[0], limit)
		require.NoError(t, err, limit)
		assert.Equal(t, []byte("abc"), data)
	}
}

func TestReadFile_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	rc, err := NewOpener().Open(testutil.NewArchive(t, testutil.Stored("x", []byte("abc"))))
	require.NoError(t, err)
	defer rc.Close()

	rc.File[0].Method = 99
	_, err = ReadFile(rc.File[0], 0)
	require.ErrorIs(t, err, zip.ErrAlgorithm)
}
