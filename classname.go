package jarsource

import "strings"

// ClassFileExtension is the suffix of compiled class entries.
const ClassFileExtension = ".class"

// ClassFileName converts a fully-qualified type name such as "com.example.Foo"
// to its archive path "com/example/Foo.class".
func ClassFileName(typeName string) string {
	return strings.ReplaceAll(typeName, ".", "/") + ClassFileExtension
}

// TypeName converts an archive path such as "com/example/Foo.class" back to
// the type name "com.example.Foo".
//
// It reports false for paths that do not name a class file.
func TypeName(path string) (string, bool) {
	base, ok := strings.CutSuffix(path, ClassFileExtension)
	if !ok || base == "" || strings.HasSuffix(base, "/") {
		return "", false
	}
	return strings.ReplaceAll(base, "/", "."), true
}
