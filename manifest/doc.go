// Package manifest parses JAR manifest files.
//
// A manifest is a sequence of sections separated by blank lines. The first
// section holds the main attributes of the archive; every following section
// describes one archive entry and starts with a Name header:
//
//	Manifest-Version: 1.0
//	Created-By: 21.0.2 (Eclipse Adoptium)
//
//	Name: com/example/Foo.class
//	Sealed: true
//
// Each header is written as "Name: Value". A line starting with a single
// space continues the value of the previous header. Attribute names are
// compared case-insensitively; entry names are compared exactly.
//
// The package only parses attribute text. It assigns no meaning to the
// attributes beyond exposing them in file order.
package manifest
