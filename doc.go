// Package jarsource reads class files from JAR and ZIP archives without
// extracting them.
//
// A [Source] is bound to an archive path and offers three views of it:
//
//   - [Source.Elements] iterates the archive's entries in archive order, each
//     with an open content stream.
//   - [Source.ClassFileLocator] resolves fully-qualified type names such as
//     "com.example.Foo" to class file bytes.
//   - [Source.Manifest] returns the parsed META-INF/MANIFEST.MF, or nil.
//
// # Quick Start
//
//	src, err := jarsource.New("app.jar")
//	if err != nil {
//	    return err
//	}
//	res, err := src.Locate("com.example.Foo")
//	if err != nil {
//	    return err
//	}
//	if res.IsResolved() {
//	    process(res.Bytes())
//	}
//
//	for e, err := range src.Elements() {
//	    if err != nil {
//	        return err
//	    }
//	    data, err := io.ReadAll(e.Reader())
//	    e.Reader().Close()
//	    ...
//	}
//
// A class that is not in the archive is not an error: Locate returns an
// unresolved [Resolution]. Errors always mean the archive could not be read.
//
// No archive handle is kept between calls. Each operation opens the file,
// reads it and closes it before returning.
package jarsource
