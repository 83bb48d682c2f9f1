package manifest

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Location is the reserved archive path of the manifest entry.
const Location = "META-INF/MANIFEST.MF"

// Well-known main attribute names.
const (
	ManifestVersion     = "Manifest-Version"
	CreatedBy           = "Created-By"
	MainClass           = "Main-Class"
	ClassPath           = "Class-Path"
	MultiRelease        = "Multi-Release"
	AutomaticModuleName = "Automatic-Module-Name"
)

// sectionName is the header that opens a per-entry section.
const sectionName = "Name"

// ErrMalformed is returned when manifest text cannot be parsed.
var ErrMalformed = errors.New("manifest: malformed")

// SyntaxError describes a malformed line.
type SyntaxError struct {
	// Line is the 1-based line number of the offending line.
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("manifest: line %d: %s", e.Line, e.Msg)
}

// Unwrap returns ErrMalformed.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

// Attributes is an ordered set of manifest headers.
//
// The zero value is an empty set ready to use.
type Attributes struct {
	names  []string
	values map[string]string
}

func key(name string) string {
	return strings.ToLower(name)
}

// Get returns the value of the named attribute.
func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.values[key(name)]
	return v, ok
}

// Value returns the value of the named attribute, or "" if it is absent.
func (a *Attributes) Value(name string) string {
	return a.values[key(name)]
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// All iterates attributes in the order they first appeared.
// Names are reported as first written.
func (a *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range a.names {
			if !yield(name, a.values[key(name)]) {
				return
			}
		}
	}
}

// set stores value under name. A repeated name keeps its original position
// and takes the new value.
func (a *Attributes) set(name, value string) {
	k := key(name)
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[k]; !ok {
		a.names = append(a.names, name)
	}
	a.values[k] = value
}

// Manifest is a parsed manifest.
type Manifest struct {
	// Main holds the attributes of the main section.
	Main Attributes

	entries []string
	byName  map[string]*Attributes
}

// Entry returns the attributes of the per-entry section for name.
func (m *Manifest) Entry(name string) (*Attributes, bool) {
	attrs, ok := m.byName[name]
	return attrs, ok
}

// Entries iterates per-entry sections in file order.
func (m *Manifest) Entries() iter.Seq2[string, *Attributes] {
	return func(yield func(string, *Attributes) bool) {
		for _, name := range m.entries {
			if !yield(name, m.byName[name]) {
				return
			}
		}
	}
}

// section returns the attributes for name, creating the section if needed.
// Repeated sections for the same name are merged.
func (m *Manifest) section(name string) *Attributes {
	if attrs, ok := m.byName[name]; ok {
		return attrs
	}
	if m.byName == nil {
		m.byName = make(map[string]*Attributes)
	}
	attrs := &Attributes{}
	m.byName[name] = attrs
	m.entries = append(m.entries, name)
	return attrs
}
