package jarsource

import (
	"io"

	"github.com/klauspost/compress/zip"
)

// Element is one archive entry produced by [Source.Elements].
type Element struct {
	name string
	rc   io.ReadCloser
	file *zip.File
}

// Name returns the raw archive path of the entry, e.g. "com/example/Foo.class".
// Directory entries keep their trailing slash.
func (e *Element) Name() string {
	return e.name
}

// Reader returns the entry's content stream.
//
// The stream is opened when the element is produced and belongs to the
// caller, who must close it. It is only readable until the iteration that
// produced it ends.
func (e *Element) Reader() io.ReadCloser {
	return e.rc
}

// ResolveAs returns the element's archive-specific descriptor as a T.
//
// The descriptor of elements read from ZIP archives is a *zip.File from
// github.com/klauspost/compress/zip, so T may be that type or any interface
// it implements. For every other T, ResolveAs returns the zero value and
// false.
//
//	if f, ok := jarsource.ResolveAs[*zip.File](e); ok {
//		fmt.Println(f.Modified)
//	}
//	if m, ok := jarsource.ResolveAs[interface{ Mode() fs.FileMode }](e); ok {
//		fmt.Println(m.Mode().Perm())
//	}
func ResolveAs[T any](e *Element) (T, bool) {
	if e == nil || e.file == nil {
		var zero T
		return zero, false
	}
	v, ok := any(e.file).(T)
	return v, ok
}
