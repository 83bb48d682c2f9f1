package jarsource

import "github.com/opencontainers/go-digest"

// ClassFileLocator looks up class file content by type name.
type ClassFileLocator interface {
	// Locate returns the content of the class file for typeName, a
	// fully-qualified name such as "com.example.Foo".
	//
	// A missing class is reported as an unresolved Resolution with a nil
	// error. Errors are reserved for failures to read the underlying data.
	Locate(typeName string) (Resolution, error)
}

// Resolution is the outcome of a Locate call.
//
// The zero value is unresolved.
type Resolution struct {
	content  []byte
	resolved bool
}

// Resolved returns a resolution holding content.
func Resolved(content []byte) Resolution {
	return Resolution{content: content, resolved: true}
}

// Unresolved returns a resolution for a class that was not found.
func Unresolved() Resolution {
	return Resolution{}
}

// IsResolved reports whether the class was found.
func (r Resolution) IsResolved() bool {
	return r.resolved
}

// Bytes returns the class file content, or nil if unresolved.
func (r Resolution) Bytes() []byte {
	return r.content
}

// Digest returns the SHA-256 digest of the content, or "" if unresolved.
func (r Resolution) Digest() digest.Digest {
	if !r.resolved {
		return ""
	}
	return digest.FromBytes(r.content)
}
